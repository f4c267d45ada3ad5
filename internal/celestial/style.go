package celestial

import "image/color"

// Style is how a body is painted: GlowRings concentric halos, each
// GlowStep pixels wider than the last, under a solid disc.
type Style struct {
	Radius    float64
	Color     color.NRGBA
	Glow      color.NRGBA
	GlowRings int
	GlowStep  float64
	Craters   []Crater
}

// Crater is a small darker ellipse offset from the disc centre, in pixels.
type Crater struct {
	DX, DY float64
	RX, RY float64
	Color  color.NRGBA
}

// SunStyle returns the sun's size and colour for hour: a deep gold disc at
// sunrise and sunset, a larger pale one at midday.
func SunStyle(hour float64) Style {
	s := Style{GlowRings: 4, GlowStep: 20}
	switch {
	case hour == 6:
		s.Radius = 40
		s.Color = color.NRGBA{R: 255, G: 200, B: 100, A: 255}
		s.Glow = color.NRGBA{R: 255, G: 180, B: 80, A: 100}
	case hour == 18:
		s.Radius = 45
		s.Color = color.NRGBA{R: 255, G: 150, B: 80, A: 255}
		s.Glow = color.NRGBA{R: 255, G: 120, B: 60, A: 120}
	case hour >= 12 && hour <= 15:
		s.Radius = 50
		s.Color = color.NRGBA{R: 255, G: 240, B: 200, A: 255}
		s.Glow = color.NRGBA{R: 255, G: 250, B: 220, A: 80}
	default:
		s.Radius = 45
		s.Color = color.NRGBA{R: 255, G: 230, B: 180, A: 255}
		s.Glow = color.NRGBA{R: 255, G: 220, B: 160, A: 90}
	}
	return s
}

var craterColor = color.NRGBA{R: 210, G: 210, B: 220, A: 255}

// MoonStyle returns the moon's appearance, which does not vary by hour.
func MoonStyle() Style {
	return Style{
		Radius:    35,
		Color:     color.NRGBA{R: 240, G: 240, B: 250, A: 255},
		Glow:      color.NRGBA{R: 220, G: 225, B: 240, A: 60},
		GlowRings: 3,
		GlowStep:  15,
		Craters: []Crater{
			{DX: -6, DY: -4, RX: 4, RY: 4, Color: craterColor},
			{DX: 8.5, DY: -8.5, RX: 3.5, RY: 3.5, Color: craterColor},
			{DX: -1.5, DY: 8.5, RX: 3.5, RY: 3.5, Color: craterColor},
		},
	}
}

// StyleFor returns the style for body at hour.
func StyleFor(body Body, hour float64) Style {
	if body == MoonBody {
		return MoonStyle()
	}
	return SunStyle(hour)
}
