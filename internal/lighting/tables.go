package lighting

func tint(r, g, b uint8) *RGB { return &RGB{R: r, G: g, B: b} }

// skyRow is a photo-overlay row: brightness multiplier plus a tint layer.
func skyRow(brightness float64, c *RGB, opacity float64) LightingParams {
	return LightingParams{
		Brightness:  brightness,
		Contrast:    1,
		Saturation:  1,
		Tint:        c,
		TintOpacity: opacity,
	}
}

// Sky returns the 24-row table used to light a background photograph.
// The noon row is the default.
func Sky() *Table {
	rows := make(map[int]LightingParams, 24)
	for h := 0; h <= 4; h++ {
		rows[h] = skyRow(0.15, tint(5, 15, 40), 0.7)
	}
	rows[5] = skyRow(0.35, tint(40, 50, 90), 0.6)
	rows[6] = skyRow(0.75, tint(255, 180, 120), 0.4)
	rows[7] = skyRow(0.9, tint(255, 230, 200), 0.25)
	for h := 8; h <= 15; h++ {
		rows[h] = skyRow(1.0, tint(255, 255, 250), 0.1)
	}
	rows[16] = skyRow(0.95, tint(255, 240, 220), 0.15)
	rows[17] = skyRow(0.85, tint(255, 200, 140), 0.35)
	rows[18] = skyRow(0.65, tint(255, 140, 100), 0.5)
	rows[19] = skyRow(0.4, tint(120, 80, 140), 0.6)
	for h := 20; h <= 23; h++ {
		rows[h] = skyRow(0.2, tint(15, 20, 50), 0.7)
	}
	return NewTable("sky", 12, rows)
}

// GradientTable returns the exposure table for procedurally drawn skies. The
// palette already darkens the night hours, so the photo table is softened:
// exposure 0.55+0.45b and a third of the tint opacity.
func GradientTable() *Table {
	base := Sky()
	rows := make(map[int]LightingParams, 24)
	for _, h := range base.Hours() {
		p := base.Lookup(float64(h))
		rows[h] = LightingParams{
			Brightness:  0.55 + 0.45*p.Brightness,
			Contrast:    1.05,
			Saturation:  1.1,
			Tint:        p.Tint,
			TintOpacity: 0.35 * p.TintOpacity,
		}
	}
	return NewTable("gradient", base.Default(), rows)
}

// RestaurantHours is the fixed hour set rendered for the restaurant photo,
// in output order.
var RestaurantHours = []int{5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 1, 3}

// Restaurant returns the table for the restaurant photo variants. The 13:00
// row is the default.
func Restaurant() *Table {
	row := func(b, w, c, s, g float64) LightingParams {
		return LightingParams{Brightness: b, Warmth: w, Contrast: c, Saturation: s, Glow: g}
	}
	return NewTable("restaurant", 13, map[int]LightingParams{
		5:  row(0.55, 0.15, 1.1, 1.2, 0.2),
		7:  row(0.85, 0.05, 1.15, 1.15, 0.0),
		9:  row(1.0, 0.0, 1.2, 1.1, 0.0),
		11: row(1.05, -0.02, 1.25, 1.05, 0.0),
		13: row(1.1, -0.03, 1.3, 1.0, 0.0),
		15: row(1.0, 0.02, 1.2, 1.1, 0.0),
		17: row(0.75, 0.12, 1.25, 1.35, 0.15),
		19: row(0.55, 0.1, 1.25, 1.3, 0.55),
		21: row(0.45, 0.08, 1.2, 1.2, 0.65),
		23: row(0.40, 0.05, 1.2, 1.15, 0.70),
		1:  row(0.35, 0.03, 1.15, 1.1, 0.75),
		3:  row(0.35, 0.04, 1.15, 1.1, 0.70),
	})
}

// ByName returns the built-in table with the given name, or nil.
func ByName(name string) *Table {
	switch name {
	case "sky":
		return Sky()
	case "gradient":
		return GradientTable()
	case "restaurant":
		return Restaurant()
	}
	return nil
}
