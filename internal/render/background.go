package render

import (
	"image"
	"image/color"

	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// GradientImage fills a w×h image row by row from g, sampling at y/h.
func GradientImage(w, h int, g lighting.Gradient) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		c := g.At(float64(y) / float64(h))
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, 255
		}
	}
	return img
}

// Ambient glow pools sit over the tables at 55% of the frame height.
var glowPools = []float64{0.25, 0.45, 0.65, 0.85}

const (
	glowRX   = 200
	glowRY   = 120
	glowBlur = 100
)

var glowColor = lighting.RGB{R: 255, G: 200, B: 130}

// AmbientGlow renders the warm restaurant lighting layer: four soft pools of
// light on black, intensity 80·strength before blurring.
func AmbientGlow(w, h int, strength float64) *image.NRGBA {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()

	level := uint8(80 * strength)
	dc.SetColor(color.NRGBA{R: level, G: level, B: level, A: 255})
	cy := float64(int(float64(h) * 0.55))
	for _, px := range glowPools {
		cx := float64(int(float64(w) * px))
		dc.DrawEllipse(cx, cy, glowRX, glowRY)
		dc.Fill()
	}

	mask := imaging.Blur(dc.Image(), glowBlur)
	return imaging.AdjustFunc(mask, func(c color.NRGBA) color.NRGBA {
		m := float64(c.R) / 255
		return color.NRGBA{
			R: uint8(float64(glowColor.R) * m),
			G: uint8(float64(glowColor.G) * m),
			B: uint8(float64(glowColor.B) * m),
			A: 255,
		}
	})
}

// toNRGBA returns img as an *image.NRGBA with a zero origin, copying only
// when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
