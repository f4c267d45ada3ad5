package render

import (
	"image/color"
	"math/rand/v2"

	"github.com/aellingwood/skyforge/internal/celestial"
	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/fogleman/gg"
)

// drawBody paints the glow rings outermost first, then the disc, then any
// craters, so the core ends up opaque on top.
func drawBody(dc *gg.Context, pos celestial.Position, style celestial.Style) {
	x := float64(int(float64(dc.Width()) * pos.X))
	y := float64(int(float64(dc.Height()) * pos.Y))

	dc.SetColor(style.Glow)
	for i := style.GlowRings; i > 0; i-- {
		r := style.Radius + float64(i)*style.GlowStep
		dc.DrawCircle(x, y, r)
		dc.Fill()
	}

	dc.SetColor(style.Color)
	dc.DrawCircle(x, y, style.Radius)
	dc.Fill()

	for _, c := range style.Craters {
		dc.SetColor(c.Color)
		dc.DrawEllipse(x+c.DX, y+c.DY, c.RX, c.RY)
		dc.Fill()
	}
}

var starSizes = []int{1, 1, 1, 2, 2, 3}

// Star field densities.
const (
	deepNightStars   = 200
	deepNightOpacity = 255
	twilightStars    = 80
	twilightOpacity  = 100
)

// starField returns the number of stars and their opacity for hour, or
// zero stars during the day.
func starField(hour float64) (int, uint8, lighting.Band) {
	if !lighting.IsNight(hour) {
		return 0, 0, lighting.Day
	}
	band := lighting.BandOf(hour)
	if band == lighting.DeepNight {
		return deepNightStars, deepNightOpacity, band
	}
	return twilightStars, twilightOpacity, lighting.Twilight
}

// drawStars scatters n stars over the upper 60% of the frame.
func drawStars(dc *gg.Context, rng *rand.Rand, n int, opacity uint8) {
	w, h := dc.Width(), dc.Height()
	maxY := int(float64(h) * 0.6)
	for range n {
		x := rng.IntN(w + 1)
		y := rng.IntN(maxY + 1)
		size := starSizes[rng.IntN(len(starSizes))]
		b := uint8(180 + rng.IntN(76))

		r := float64(size) / 2
		dc.SetColor(color.NRGBA{R: b, G: b, B: b, A: opacity})
		dc.DrawEllipse(float64(x)+r, float64(y)+r, r, r)
		dc.Fill()
	}
}

var (
	cloudWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 70}
	cloudWarm  = color.NRGBA{R: 255, G: 214, B: 180, A: 70}
)

// drawClouds places 3–7 clouds in the upper third, each a cluster of
// overlapping soft puffs. It returns the cloud count.
func drawClouds(dc *gg.Context, rng *rand.Rand, hour float64) int {
	w, h := float64(dc.Width()), float64(dc.Height())
	c := cloudWhite
	if lighting.NearSunset(hour) {
		c = cloudWarm
	}

	n := 3 + rng.IntN(5)
	for range n {
		cx := w * (0.05 + 0.9*rng.Float64())
		cy := h * (0.06 + 0.24*rng.Float64())
		base := w * (0.04 + 0.05*rng.Float64())
		puffs := 3 + rng.IntN(3)
		for range puffs {
			rx := base * (0.6 + 0.6*rng.Float64())
			dx := (rng.Float64()*2 - 1) * base * 1.2
			dy := (rng.Float64()*2 - 1) * base * 0.25
			dc.SetColor(c)
			dc.DrawEllipse(cx+dx, cy+dy, rx, rx*0.55)
			dc.Fill()
		}
	}
	return n
}

var (
	deckRail  = color.NRGBA{R: 92, G: 64, B: 44, A: 255}
	deckFloor = color.NRGBA{R: 70, G: 48, B: 33, A: 255}
)

// deckHeight is the share of the frame covered by the railing.
const deckHeight = 0.15

// drawDeck draws a wooden railing over the bottom 15% of the frame: a top
// rail, a lower rail, balusters, and the deck floor.
func drawDeck(dc *gg.Context) {
	w, h := float64(dc.Width()), float64(dc.Height())
	top := h * (1 - deckHeight)

	dc.SetColor(deckRail)
	dc.DrawRectangle(0, top, w, h*0.02)
	dc.Fill()
	dc.DrawRectangle(0, h*0.93, w, h*0.012)
	dc.Fill()

	bw := w * 0.008
	for x := w / 48; x < w; x += w / 24 {
		dc.DrawRectangle(x-bw/2, top, bw, h*0.95-top)
		dc.Fill()
	}

	dc.SetColor(deckFloor)
	dc.DrawRectangle(0, h*0.95, w, h*0.05)
	dc.Fill()
}
