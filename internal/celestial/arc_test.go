package celestial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunVisibilityWindow(t *testing.T) {
	for h := 0.0; h < 24; h += 0.25 {
		_, ok := Sun(h)
		assert.Equal(t, h >= 6 && h <= 19, ok, "hour %v", h)
	}
}

func TestMoonVisibilityWindow(t *testing.T) {
	for h := 0.0; h < 24; h += 0.25 {
		_, ok := Moon(h)
		assert.Equal(t, h < 6 || h > 18, ok, "hour %v", h)
	}
}

func TestSunriseAndPeak(t *testing.T) {
	p, ok := Sun(6)
	require.True(t, ok)
	assert.InDelta(t, 0.15, p.X, 1e-9)
	assert.InDelta(t, 0.85, p.Y, 1e-9)

	peak, ok := Sun(12.5)
	require.True(t, ok)
	assert.InDelta(t, 0.30, peak.Y, 1e-9)
	assert.InDelta(t, 0.5, peak.X, 1e-9)

	set, ok := Sun(19)
	require.True(t, ok)
	assert.InDelta(t, 0.85, set.X, 1e-9)
	assert.InDelta(t, 0.85, set.Y, 1e-9)
}

func TestSunArcPeaksAtMidday(t *testing.T) {
	best, bestY := 0.0, math.Inf(1)
	for h := 6.0; h <= 19; h += 0.5 {
		p, _ := Sun(h)
		if p.Y < bestY {
			best, bestY = h, p.Y
		}
	}
	assert.InDelta(t, 12.5, best, 1e-9)
}

func TestMoonRemap(t *testing.T) {
	rise, ok := Moon(19)
	require.True(t, ok)
	assert.InDelta(t, 0.15, rise.X, 1e-9)
	assert.InDelta(t, 0.85, rise.Y, 1e-9)

	// 00:00 is five hours after moonrise.
	midnight, ok := Moon(0)
	require.True(t, ok)
	progress := 5.0 / 11.0
	assert.InDelta(t, 0.15+0.7*progress, midnight.X, 1e-9)
	assert.InDelta(t, 0.85-0.45*math.Sin(math.Pi*progress), midnight.Y, 1e-9)

	// The moon keeps moving right through the night.
	prev := -1.0
	for _, h := range []float64{19, 20, 21, 22, 23, 0, 1, 2, 3, 4, 5} {
		p, _ := Moon(h)
		assert.Greater(t, p.X, prev, "hour %v", h)
		prev = p.X
	}
}

func TestPositionsStayInFrame(t *testing.T) {
	for h := 0.0; h < 24; h += 0.5 {
		for _, arc := range []Arc{SunArc, MoonArc} {
			p, ok := arc.Position(h)
			if !ok {
				continue
			}
			assert.True(t, p.X >= 0 && p.X <= 1, "%s x at %v = %v", arc.Name, h, p.X)
			assert.True(t, p.Y >= 0 && p.Y <= 1, "%s y at %v = %v", arc.Name, h, p.Y)
		}
	}
}

func TestVisibleResolvesOneBody(t *testing.T) {
	for h := 0; h < 24; h++ {
		body, _ := Visible(float64(h))
		_, sun := Sun(float64(h))
		_, moon := Moon(float64(h))
		switch body {
		case SunBody:
			assert.True(t, sun, "hour %d", h)
		case MoonBody:
			assert.True(t, moon, "hour %d", h)
			assert.False(t, sun, "hour %d", h)
		case None:
			assert.False(t, sun || moon, "hour %d", h)
		}
	}
	body, _ := Visible(19)
	assert.Equal(t, SunBody, body, "the sun wins the 19:00 overlap")
	body, _ = Visible(20)
	assert.Equal(t, MoonBody, body)
}

func TestCustomArc(t *testing.T) {
	arc := SunArc.WithAmplitude(0.25)
	p, ok := arc.Position(12.5)
	require.True(t, ok)
	assert.InDelta(t, 0.60, p.Y, 1e-9)

	// An arc with no window hooks is always visible.
	bare := Arc{Span: 24, Amplitude: 0.5, XSpan: 1, Base: 1}
	_, ok = bare.Position(-3)
	assert.True(t, ok)
}

func TestStyles(t *testing.T) {
	assert.Equal(t, 40.0, SunStyle(6).Radius)
	assert.Equal(t, 50.0, SunStyle(13).Radius)
	assert.Equal(t, 45.0, SunStyle(9).Radius)
	assert.Len(t, MoonStyle().Craters, 3)
	assert.Equal(t, 3, StyleFor(MoonBody, 2).GlowRings)
	assert.Equal(t, 4, StyleFor(SunBody, 10).GlowRings)
}
