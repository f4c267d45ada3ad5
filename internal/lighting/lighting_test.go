package lighting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsDeterministic(t *testing.T) {
	for _, table := range []*Table{Sky(), GradientTable(), Restaurant()} {
		for _, h := range table.Hours() {
			first := table.Lookup(float64(h))
			second := table.Lookup(float64(h))
			assert.Equal(t, first, second, "%s table hour %d", table.Name(), h)
		}
	}
}

func TestSkyTableCoversEveryHour(t *testing.T) {
	sky := Sky()
	for h := 0; h < 24; h++ {
		assert.True(t, sky.Has(h), "hour %d", h)
	}
	assert.Equal(t, 12, sky.Default())
}

func TestLookupFallsBackToDefault(t *testing.T) {
	r := Restaurant()
	assert.False(t, r.Has(12))
	assert.Equal(t, r.Lookup(13), r.Lookup(12))
	assert.Equal(t, r.Lookup(13), r.Lookup(-4))
	assert.Equal(t, r.Lookup(13), r.Lookup(99))

	noon := Sky().Lookup(12)
	assert.Equal(t, noon, Sky().Lookup(24))
}

func TestLookupFractionalHourUsesFloor(t *testing.T) {
	sky := Sky()
	assert.Equal(t, sky.Lookup(6), sky.Lookup(6.75))
}

func TestSkyTableValues(t *testing.T) {
	sky := Sky()

	midnight := sky.Lookup(0)
	assert.InDelta(t, 0.15, midnight.Brightness, 1e-9)
	require.NotNil(t, midnight.Tint)
	assert.Equal(t, RGB{5, 15, 40}, *midnight.Tint)
	assert.InDelta(t, 0.7, midnight.TintOpacity, 1e-9)

	sunset := sky.Lookup(18)
	assert.InDelta(t, 0.65, sunset.Brightness, 1e-9)
	assert.Equal(t, RGB{255, 140, 100}, *sunset.Tint)

	for h := 8; h <= 15; h++ {
		assert.InDelta(t, 1.0, sky.Lookup(float64(h)).Brightness, 1e-9, "hour %d", h)
	}
}

func TestRestaurantTableHours(t *testing.T) {
	r := Restaurant()
	assert.ElementsMatch(t, RestaurantHours, r.Hours())
	assert.Equal(t, 13, r.Default())
	assert.InDelta(t, 0.75, r.Lookup(1).Glow, 1e-9)
	assert.InDelta(t, -0.03, r.Lookup(13).Warmth, 1e-9)
}

func TestGradientTableSoftensSky(t *testing.T) {
	sky, grad := Sky(), GradientTable()
	for h := 0; h < 24; h++ {
		s, g := sky.Lookup(float64(h)), grad.Lookup(float64(h))
		assert.GreaterOrEqual(t, g.Brightness, s.Brightness, "hour %d", h)
		assert.LessOrEqual(t, g.TintOpacity, s.TintOpacity, "hour %d", h)
	}
}

func TestGradientAtBreakpointIsHorizon(t *testing.T) {
	for h := range restaurantAnchors {
		g := RestaurantPalette(float64(h))
		assert.Equal(t, g.Horizon, g.At(0.35), "hour %d", h)
		assert.Equal(t, g.Top, g.At(0), "hour %d", h)
	}
	for h := range skyAnchors {
		g := SkyPalette(float64(h))
		assert.Equal(t, g.Horizon, g.At(0.5), "hour %d", h)
	}
}

func TestGradientAtBottom(t *testing.T) {
	g := RestaurantPalette(13)
	got := g.At(1)
	// (pos-brk)/(1-brk) may land a hair under 1; allow one step of rounding.
	assert.InDelta(t, float64(g.Bottom.R), float64(got.R), 1)
	assert.InDelta(t, float64(g.Bottom.G), float64(got.G), 1)
	assert.InDelta(t, float64(g.Bottom.B), float64(got.B), 1)
}

func TestGradientInterpolatesMonotonically(t *testing.T) {
	g := Gradient{Top: RGB{0, 0, 0}, Horizon: RGB{100, 100, 100}, Bottom: RGB{200, 200, 200}, Break: 0.35}
	prev := -1
	for i := 0; i <= 100; i++ {
		c := g.At(float64(i) / 100)
		assert.GreaterOrEqual(t, int(c.R), prev)
		prev = int(c.R)
	}
}

func TestPaletteFallbacks(t *testing.T) {
	assert.Equal(t, RestaurantPalette(13), RestaurantPalette(12))
	assert.Equal(t, SkyPalette(12), SkyPalette(30))
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		hour float64
		want Band
	}{
		{0, DeepNight}, {4, DeepNight}, {5, Twilight}, {6, Day}, {12, Day},
		{18, Day}, {19, Twilight}, {20, Twilight}, {21, DeepNight}, {23, DeepNight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandOf(tt.hour), "hour %v", tt.hour)
	}
	assert.Equal(t, "deep-night", DeepNight.String())
}

func TestIsNight(t *testing.T) {
	assert.True(t, IsNight(0))
	assert.True(t, IsNight(5))
	assert.False(t, IsNight(6))
	assert.False(t, IsNight(18))
	assert.True(t, IsNight(19))
}

func TestLoadTableYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	content := `rows:
  "6":
    brightness: 0.8
    tint: {r: 255, g: 170, b: 110}
  "12":
    tintOpacity: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTable(path, Sky())
	require.NoError(t, err)

	six := table.Lookup(6)
	assert.InDelta(t, 0.8, six.Brightness, 1e-9)
	assert.Equal(t, RGB{255, 170, 110}, *six.Tint)
	assert.InDelta(t, 0.4, six.TintOpacity, 1e-9, "unspecified fields keep the base value")

	noon := table.Lookup(12)
	assert.False(t, noon.HasTint())

	// The base table is untouched.
	assert.InDelta(t, 0.75, Sky().Lookup(6).Brightness, 1e-9)
}

func TestLoadTableTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.toml")
	content := `[rows.17]
glow = 0.3
warmth = 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTable(path, Restaurant())
	require.NoError(t, err)
	row := table.Lookup(17)
	assert.InDelta(t, 0.3, row.Glow, 1e-9)
	assert.InDelta(t, 0.2, row.Warmth, 1e-9)
	assert.InDelta(t, 0.75, row.Brightness, 1e-9)
}

func TestLoadTableErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTable(filepath.Join(dir, "missing.yaml"), Sky())
	assert.Error(t, err)

	bad := filepath.Join(dir, "table.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{}`), 0o644))
	_, err = LoadTable(bad, Sky())
	assert.ErrorContains(t, err, "unsupported")

	hour := filepath.Join(dir, "hour.yaml")
	require.NoError(t, os.WriteFile(hour, []byte("rows:\n  \"25\":\n    glow: 1\n"), 0o644))
	_, err = LoadTable(hour, Sky())
	assert.ErrorContains(t, err, "invalid hour")
}
