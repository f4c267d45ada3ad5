package lighting

import "math"

// Band classifies an hour by how dark the sky is.
type Band int

const (
	Day Band = iota
	Twilight
	DeepNight
)

func (b Band) String() string {
	switch b {
	case Twilight:
		return "twilight"
	case DeepNight:
		return "deep-night"
	default:
		return "day"
	}
}

// BandOf returns the band for hour: deep night for 0–4 and 21–23,
// twilight for 5, 19 and 20, day otherwise.
func BandOf(hour float64) Band {
	h := int(math.Floor(hour))
	switch {
	case h >= 0 && h <= 4, h >= 21 && h <= 23:
		return DeepNight
	case h == 5, h == 19, h == 20:
		return Twilight
	}
	return Day
}

// IsNight reports whether hour falls in the night band (before 06:00 or
// after 18:00).
func IsNight(hour float64) bool {
	return hour < 6 || hour > 18
}

// NearSunset reports whether hour is in the warm late-afternoon window
// used for cloud tinting.
func NearSunset(hour float64) bool {
	return hour >= 16 && hour < 20
}
