package scaffold

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	seedWidth  = 1920
	seedHeight = 1080
)

// blend returns the colour t of the way from a to b in Lab space.
func blend(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendLab(b, t).Clamped()
}

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

// SeedBackground draws a placeholder daytime landscape: a pale sky over two
// rows of hills.
func SeedBackground(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	top, horizon := hex("#6f9fd8"), hex("#dbe9f5")
	for y := range h {
		dc.SetColor(blend(top, horizon, float64(y)/(fh*0.7)))
		dc.DrawRectangle(0, float64(y), fw, 1)
		dc.Fill()
	}

	dc.SetColor(hex("#7d9a78"))
	dc.DrawEllipse(fw*0.25, fh*0.85, fw*0.45, fh*0.25)
	dc.Fill()
	dc.DrawEllipse(fw*0.8, fh*0.88, fw*0.4, fh*0.22)
	dc.Fill()

	dc.SetColor(hex("#4f6b4a"))
	dc.DrawEllipse(fw*0.55, fh*1.0, fw*0.6, fh*0.2)
	dc.Fill()

	return dc.Image()
}

// SeedRestaurant draws a placeholder dining room: warm walls, a wide window
// and a row of tables.
func SeedRestaurant(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	dc.SetColor(hex("#8a5a3c"))
	dc.Clear()

	// Window band.
	dc.SetColor(hex("#a9c9e6"))
	dc.DrawRectangle(fw*0.05, fh*0.08, fw*0.9, fh*0.35)
	dc.Fill()
	dc.SetColor(hex("#5b3a26"))
	for i := 1; i < 6; i++ {
		dc.DrawRectangle(fw*0.05+fw*0.15*float64(i)-4, fh*0.08, 8, fh*0.35)
		dc.Fill()
	}

	// Floor.
	dc.SetColor(hex("#4a2f20"))
	dc.DrawRectangle(0, fh*0.7, fw, fh*0.3)
	dc.Fill()

	// Tables under the ambient light pools.
	cloth := color.NRGBA{R: 236, G: 228, B: 214, A: 255}
	for _, px := range []float64{0.25, 0.45, 0.65, 0.85} {
		dc.SetColor(cloth)
		dc.DrawEllipse(fw*px, fh*0.66, fw*0.07, fh*0.035)
		dc.Fill()
		dc.SetColor(hex("#2e1d14"))
		dc.DrawRectangle(fw*px-6, fh*0.68, 12, fh*0.1)
		dc.Fill()
	}
	return dc.Image()
}
