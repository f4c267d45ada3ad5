// Package lighting holds the hand-authored per-hour lighting tables, sky
// gradient palettes, and time-of-day bands used by the skyforge renderers.
package lighting

import (
	"image/color"
	"math"
	"slices"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R uint8 `yaml:"r" toml:"r"`
	G uint8 `yaml:"g" toml:"g"`
	B uint8 `yaml:"b" toml:"b"`
}

// NRGBA returns c with the given alpha.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// LightingParams is one row of a lighting table.
type LightingParams struct {
	Brightness  float64 `yaml:"brightness"  toml:"brightness"`
	Warmth      float64 `yaml:"warmth"      toml:"warmth"` // hue shift, in hue cycles
	Contrast    float64 `yaml:"contrast"    toml:"contrast"`
	Saturation  float64 `yaml:"saturation"  toml:"saturation"`
	Glow        float64 `yaml:"glow"        toml:"glow"`
	Tint        *RGB    `yaml:"tint"        toml:"tint"`
	TintOpacity float64 `yaml:"tintOpacity" toml:"tintOpacity"`
}

// HasTint reports whether the row carries a tint colour with a visible
// opacity.
func (p LightingParams) HasTint() bool {
	return p.Tint != nil && p.TintOpacity > 0
}

// Table maps integer hours to lighting parameters. Hours that have no row
// resolve to the row for Default. A Table is never mutated after
// construction; WithRows returns a copy.
type Table struct {
	name    string
	rows    map[int]LightingParams
	deflt   int
	ordered []int
}

// NewTable builds a table from rows. defaultHour must be one of the keys.
func NewTable(name string, defaultHour int, rows map[int]LightingParams) *Table {
	t := &Table{
		name:  name,
		rows:  make(map[int]LightingParams, len(rows)),
		deflt: defaultHour,
	}
	for h, p := range rows {
		t.rows[h] = p
	}
	t.ordered = sortedHours(t.rows)
	return t
}

// Name returns the table's name (e.g. "sky", "restaurant").
func (t *Table) Name() string { return t.name }

// Default returns the fallback hour.
func (t *Table) Default() int { return t.deflt }

// Hours returns the hours that have explicit rows, ascending.
func (t *Table) Hours() []int {
	out := make([]int, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Lookup returns the row for hour. Fractional hours use the row of their
// floor; hours without a row fall back to the default row.
func (t *Table) Lookup(hour float64) LightingParams {
	key := int(math.Floor(hour))
	if p, ok := t.rows[key]; ok {
		return p
	}
	return t.rows[t.deflt]
}

// Has reports whether hour has an explicit row.
func (t *Table) Has(hour int) bool {
	_, ok := t.rows[hour]
	return ok
}

// WithRows returns a copy of t with rows overlaid on top of the existing
// rows.
func (t *Table) WithRows(rows map[int]LightingParams) *Table {
	merged := make(map[int]LightingParams, len(t.rows)+len(rows))
	for h, p := range t.rows {
		merged[h] = p
	}
	for h, p := range rows {
		merged[h] = p
	}
	return NewTable(t.name, t.deflt, merged)
}

func sortedHours(rows map[int]LightingParams) []int {
	hours := make([]int, 0, len(rows))
	for h := range rows {
		hours = append(hours, h)
	}
	slices.Sort(hours)
	return hours
}
