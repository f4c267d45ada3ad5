package lighting

import "math"

// Gradient is a vertical colour ramp made of two linear segments:
// Top→Horizon over [0, Break) and Horizon→Bottom over [Break, 1].
type Gradient struct {
	Top     RGB
	Horizon RGB
	Bottom  RGB
	Break   float64
}

// At returns the colour at normalised height pos (0 = top, 1 = bottom).
// Channels are truncated toward zero, so At(Break) is exactly Horizon.
func (g Gradient) At(pos float64) RGB {
	pos = math.Max(0, math.Min(1, pos))
	brk := g.Break
	if brk <= 0 || brk >= 1 {
		brk = 0.5
	}
	if pos < brk {
		return lerp(g.Top, g.Horizon, pos/brk)
	}
	return lerp(g.Horizon, g.Bottom, (pos-brk)/(1-brk))
}

func lerp(a, b RGB, t float64) RGB {
	ch := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return RGB{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B)}
}

type anchors [3]RGB

var skyAnchors = map[int]anchors{
	0:  {{5, 10, 30}, {10, 15, 40}, {15, 20, 45}},
	1:  {{8, 12, 32}, {12, 18, 42}, {16, 22, 47}},
	2:  {{10, 14, 34}, {14, 20, 44}, {18, 24, 49}},
	3:  {{12, 16, 36}, {16, 22, 46}, {20, 26, 51}},
	4:  {{15, 20, 40}, {20, 28, 50}, {25, 32, 55}},
	5:  {{30, 35, 70}, {80, 60, 100}, {120, 80, 110}},
	6:  {{255, 180, 120}, {255, 140, 90}, {255, 100, 70}},
	7:  {{135, 180, 230}, {200, 160, 140}, {255, 190, 150}},
	8:  {{100, 160, 230}, {130, 180, 235}, {160, 200, 240}},
	9:  {{90, 150, 225}, {120, 180, 235}, {150, 200, 245}},
	10: {{70, 130, 225}, {100, 160, 235}, {135, 190, 250}},
	11: {{70, 130, 225}, {100, 160, 235}, {135, 190, 250}},
	12: {{60, 120, 220}, {90, 150, 230}, {120, 180, 245}},
	13: {{60, 120, 220}, {90, 150, 230}, {120, 180, 245}},
	14: {{60, 120, 220}, {90, 150, 230}, {120, 180, 245}},
	15: {{80, 140, 220}, {110, 170, 235}, {140, 195, 248}},
	16: {{100, 150, 215}, {150, 175, 220}, {200, 185, 200}},
	17: {{120, 160, 210}, {240, 180, 140}, {255, 160, 100}},
	18: {{255, 160, 100}, {255, 120, 90}, {250, 90, 120}},
	19: {{120, 80, 140}, {90, 60, 110}, {60, 40, 90}},
	20: {{50, 45, 90}, {35, 35, 70}, {25, 25, 55}},
	21: {{20, 25, 60}, {15, 20, 50}, {12, 16, 42}},
	22: {{12, 18, 50}, {10, 15, 42}, {8, 12, 36}},
	23: {{8, 12, 40}, {7, 10, 35}, {6, 8, 32}},
}

var restaurantAnchors = map[int]anchors{
	5:  {{50, 80, 140}, {255, 180, 120}, {180, 140, 100}},
	7:  {{100, 150, 220}, {150, 200, 240}, {200, 220, 240}},
	9:  {{80, 140, 230}, {120, 180, 240}, {180, 210, 245}},
	11: {{70, 130, 240}, {100, 170, 250}, {160, 200, 250}},
	13: {{60, 120, 250}, {90, 160, 255}, {140, 190, 255}},
	15: {{70, 130, 240}, {110, 175, 245}, {170, 205, 250}},
	17: {{120, 140, 200}, {255, 200, 120}, {240, 170, 100}},
	19: {{30, 50, 100}, {200, 120, 80}, {80, 60, 80}},
	21: {{15, 25, 60}, {40, 50, 90}, {30, 35, 60}},
	23: {{10, 15, 40}, {20, 25, 50}, {15, 20, 45}},
	1:  {{5, 10, 35}, {15, 20, 45}, {10, 15, 40}},
	3:  {{8, 12, 38}, {25, 30, 55}, {20, 25, 50}},
}

// SkyPalette returns the evenly split top/middle/bottom sky gradient for
// hour. Hours outside 0–23 use the noon palette.
func SkyPalette(hour float64) Gradient {
	a, ok := skyAnchors[int(math.Floor(hour))]
	if !ok {
		a = skyAnchors[12]
	}
	return Gradient{Top: a[0], Horizon: a[1], Bottom: a[2], Break: 0.5}
}

// RestaurantPalette returns the restaurant sky gradient with its horizon
// at 35% of the frame height. Hours outside the restaurant set use 13:00.
func RestaurantPalette(hour float64) Gradient {
	a, ok := restaurantAnchors[int(math.Floor(hour))]
	if !ok {
		a = restaurantAnchors[13]
	}
	return Gradient{Top: a[0], Horizon: a[1], Bottom: a[2], Break: 0.35}
}
