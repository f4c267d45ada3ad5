// Package celestial places the sun and moon on stylised sinusoidal arcs
// across the frame. Positions are normalised to [0,1]², origin top-left.
package celestial

import "math"

// Position is a normalised frame coordinate.
type Position struct {
	X float64
	Y float64
}

// Arc describes one body's path. Phase maps a visible hour to its offset
// along the arc (in hours since rising); Progress = Phase(h) / Span.
//
//	x = XStart + XSpan·progress
//	y = Base − Amplitude·sin(π·progress)
type Arc struct {
	Name      string
	Span      float64
	Amplitude float64
	XStart    float64
	XSpan     float64
	Base      float64
	Visible   func(hour float64) bool
	Phase     func(hour float64) float64
}

// SunArc is visible from 06:00 to 19:00 inclusive and peaks at 12:30.
var SunArc = Arc{
	Name:      "sun",
	Span:      13,
	Amplitude: 0.55,
	XStart:    0.15,
	XSpan:     0.7,
	Base:      0.85,
	Visible:   func(h float64) bool { return h >= 6 && h <= 19 },
	Phase:     func(h float64) float64 { return h - 6 },
}

// MoonArc is visible before 06:00 and after 18:00. The window 19..23, 0..5
// is remapped to a contiguous 0..10; the hour before 19:00 maps
// just below zero so the moon climbs from under the horizon.
var MoonArc = Arc{
	Name:      "moon",
	Span:      11,
	Amplitude: 0.45,
	XStart:    0.15,
	XSpan:     0.7,
	Base:      0.85,
	Visible:   func(h float64) bool { return h < 6 || h > 18 },
	Phase: func(h float64) float64 {
		if h > 18 {
			return h - 19
		}
		return h + 5
	},
}

// Position returns the body's position at hour, or false when the body is
// below the horizon. It never panics; a nil Visible or Phase means always
// visible and a phase of hour.
func (a Arc) Position(hour float64) (Position, bool) {
	if a.Visible != nil && !a.Visible(hour) {
		return Position{}, false
	}
	phase := hour
	if a.Phase != nil {
		phase = a.Phase(hour)
	}
	span := a.Span
	if span <= 0 {
		span = 1
	}
	progress := phase / span
	return Position{
		X: a.XStart + a.XSpan*progress,
		Y: a.Base - a.Amplitude*math.Sin(math.Pi*progress),
	}, true
}

// WithAmplitude returns a copy of a with a different arc height.
func (a Arc) WithAmplitude(amp float64) Arc {
	a.Amplitude = amp
	return a
}

// Sun returns the sun position at hour.
func Sun(hour float64) (Position, bool) { return SunArc.Position(hour) }

// Moon returns the moon position at hour.
func Moon(hour float64) (Position, bool) { return MoonArc.Position(hour) }

// Body identifies which celestial body a frame shows.
type Body int

const (
	None Body = iota
	SunBody
	MoonBody
)

func (b Body) String() string {
	switch b {
	case SunBody:
		return "sun"
	case MoonBody:
		return "moon"
	}
	return "none"
}

// Resolve returns the single body drawn at hour for the given arcs. Where
// both are up the sun wins.
func Resolve(sun, moon Arc, hour float64) (Body, Position) {
	if p, ok := sun.Position(hour); ok {
		return SunBody, p
	}
	if p, ok := moon.Position(hour); ok {
		return MoonBody, p
	}
	return None, Position{}
}

// Visible resolves the body drawn at hour on the default arcs. The sun and
// moon windows overlap on (18, 19].
func Visible(hour float64) (Body, Position) {
	return Resolve(SunArc, MoonArc, hour)
}
