package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/aellingwood/skyforge/internal/celestial"
	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/disintegration/imaging"
)

func smallGradient() *GradientSky {
	opts := DefaultGradientOptions()
	opts.Width, opts.Height = 192, 108
	return NewGradientSky(opts)
}

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

// ---------------------------------------------------------------------------
// Gradient sky
// ---------------------------------------------------------------------------

func TestGradientSky_StarFieldDeterministic(t *testing.T) {
	a, err := smallGradient().Render(0)
	if err != nil {
		t.Fatalf("Render(0): %v", err)
	}
	b, err := smallGradient().Render(0)
	if err != nil {
		t.Fatalf("Render(0): %v", err)
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Fatal("two renders of hour 0 with the same seed differ")
	}
}

func TestGradientSky_SeedChangesStars(t *testing.T) {
	opts := DefaultGradientOptions()
	opts.Width, opts.Height = 192, 108
	a, _ := NewGradientSky(opts).Render(0)
	opts.Seed = 7
	b, _ := NewGradientSky(opts).Render(0)
	if bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Fatal("different seeds produced identical star fields")
	}
}

func TestGradientSky_Midnight(t *testing.T) {
	g := smallGradient()
	night, err := g.Render(0)
	if err != nil {
		t.Fatalf("Render(0): %v", err)
	}
	noon, err := g.Render(12)
	if err != nil {
		t.Fatalf("Render(12): %v", err)
	}

	r := night.Report
	if r.Body != celestial.None {
		t.Errorf("hour 0 body = %v, want none", r.Body)
	}
	if r.Stars != deepNightStars || r.StarBand != lighting.DeepNight {
		t.Errorf("hour 0 stars = %d (%v), want %d deep-night", r.Stars, r.StarBand, deepNightStars)
	}
	if r.Clouds != 0 {
		t.Errorf("hour 0 clouds = %d, want 0", r.Clouds)
	}
	if night.Report.Luminance >= noon.Report.Luminance {
		t.Errorf("hour 0 luminance %.3f not darker than noon %.3f", night.Report.Luminance, noon.Report.Luminance)
	}
}

func TestGradientSky_Noon(t *testing.T) {
	f, err := smallGradient().Render(12)
	if err != nil {
		t.Fatalf("Render(12): %v", err)
	}
	if f.Report.Body != celestial.SunBody {
		t.Errorf("hour 12 body = %v, want sun", f.Report.Body)
	}
	if f.Report.Stars != 0 {
		t.Errorf("hour 12 stars = %d, want 0", f.Report.Stars)
	}
	if f.Report.Clouds < 3 || f.Report.Clouds > 7 {
		t.Errorf("hour 12 clouds = %d, want 3..7", f.Report.Clouds)
	}
	if got := f.Report.String(); got != "Sun, Clouds" {
		t.Errorf("Report.String() = %q, want %q", got, "Sun, Clouds")
	}
}

func TestGradientSky_TwilightHasFewStars(t *testing.T) {
	f, err := smallGradient().Render(5)
	if err != nil {
		t.Fatalf("Render(5): %v", err)
	}
	if f.Report.Stars != twilightStars {
		t.Errorf("hour 5 stars = %d, want %d", f.Report.Stars, twilightStars)
	}
	if f.Report.Clouds != 0 {
		t.Errorf("hour 5 clouds = %d, want 0", f.Report.Clouds)
	}
}

func TestGradientSky_Dimensions(t *testing.T) {
	f, _ := smallGradient().Render(9)
	if b := f.Image.Bounds(); b.Dx() != 192 || b.Dy() != 108 {
		t.Errorf("bounds = %v, want 192x108", b)
	}
	if g := NewGradientSky(GradientOptions{}); g.opts.Width != 1920 || g.opts.Height != 1080 {
		t.Errorf("zero options size = %dx%d, want 1920x1080", g.opts.Width, g.opts.Height)
	}
}

// ---------------------------------------------------------------------------
// Photo sky
// ---------------------------------------------------------------------------

func TestPhotoSky_Bodies(t *testing.T) {
	p := NewPhotoSky(uniform(160, 90, color.NRGBA{R: 90, G: 110, B: 140, A: 255}), DefaultSkyOptions())

	tests := []struct {
		hour  int
		body  celestial.Body
		stars int
	}{
		{0, celestial.MoonBody, deepNightStars},
		{5, celestial.MoonBody, twilightStars},
		{12, celestial.SunBody, 0},
		{19, celestial.SunBody, 0},
		{20, celestial.MoonBody, twilightStars},
	}
	for _, tt := range tests {
		f, err := p.Render(tt.hour)
		if err != nil {
			t.Fatalf("Render(%d): %v", tt.hour, err)
		}
		if f.Report.Body != tt.body {
			t.Errorf("hour %d body = %v, want %v", tt.hour, f.Report.Body, tt.body)
		}
		if f.Report.Stars != tt.stars {
			t.Errorf("hour %d stars = %d, want %d", tt.hour, f.Report.Stars, tt.stars)
		}
	}
}

func TestPhotoSky_KeepsSourceSize(t *testing.T) {
	p := NewPhotoSky(uniform(120, 80, color.NRGBA{R: 50, G: 50, B: 50, A: 255}), DefaultSkyOptions())
	f, err := p.Render(8)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := f.Image.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("bounds = %v, want 120x80", b)
	}
}

func TestPhotoSky_EmptySource(t *testing.T) {
	p := NewPhotoSky(image.NewNRGBA(image.Rect(0, 0, 0, 0)), DefaultSkyOptions())
	if _, err := p.Render(12); err == nil {
		t.Fatal("expected error for empty background")
	}
}

// ---------------------------------------------------------------------------
// Restaurant
// ---------------------------------------------------------------------------

func TestRestaurant_GlowOnlyAtNight(t *testing.T) {
	r := NewRestaurant(uniform(64, 48, color.NRGBA{R: 150, G: 120, B: 100, A: 255}), DefaultRestaurantOptions())

	day, err := r.Render(13)
	if err != nil {
		t.Fatalf("Render(13): %v", err)
	}
	if day.Report.Glow {
		t.Error("13:00 should have no ambient glow")
	}

	night, err := r.Render(21)
	if err != nil {
		t.Fatalf("Render(21): %v", err)
	}
	if !night.Report.Glow {
		t.Error("21:00 should have ambient glow")
	}
	if night.Report.Luminance >= day.Report.Luminance {
		t.Errorf("21:00 luminance %.3f not darker than 13:00 %.3f", night.Report.Luminance, day.Report.Luminance)
	}
}

func TestRestaurant_UnknownHourUsesDefault(t *testing.T) {
	r := NewRestaurant(uniform(32, 24, color.NRGBA{R: 150, G: 120, B: 100, A: 255}), DefaultRestaurantOptions())
	a, _ := r.Render(13)
	b, _ := r.Render(14)
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("hour 14 should render with the 13:00 row")
	}
}

// ---------------------------------------------------------------------------
// Tone operations
// ---------------------------------------------------------------------------

func TestAdjustPixel_HueWraps(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	base := lighting.LightingParams{Brightness: 1, Saturation: 1}

	tests := []struct {
		name   string
		warmth float64
		want   color.NRGBA
	}{
		{"none", 0, color.NRGBA{R: 255, A: 255}},
		{"half cycle", 0.5, color.NRGBA{G: 255, B: 255, A: 255}},
		{"full cycle", 1, color.NRGBA{R: 255, A: 255}},
		{"negative", -0.5, color.NRGBA{G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.Warmth = tt.warmth
			if got := AdjustPixel(red, p); got != tt.want {
				t.Errorf("AdjustPixel(red, warmth=%v) = %v, want %v", tt.warmth, got, tt.want)
			}
		})
	}
}

func TestAdjustPixel_TonalBands(t *testing.T) {
	p := lighting.LightingParams{Brightness: 0.5, Saturation: 1}

	// Bright grey: v 0.8 scaled by 0.75.
	if got := AdjustPixel(color.NRGBA{R: 204, G: 204, B: 204, A: 255}, p); got.R < 152 || got.R > 153 {
		t.Errorf("bright band R = %d, want ~153", got.R)
	}
	// Dark grey: v 0.2 scaled by 0.75.
	if got := AdjustPixel(color.NRGBA{R: 51, G: 51, B: 51, A: 255}, p); got.R != 38 {
		t.Errorf("dark band R = %d, want 38", got.R)
	}
	// Alpha is preserved.
	if got := AdjustPixel(color.NRGBA{R: 10, G: 20, B: 30, A: 77}, p); got.A != 77 {
		t.Errorf("alpha = %d, want 77", got.A)
	}
}

func TestExposure(t *testing.T) {
	img := uniform(4, 4, color.NRGBA{R: 100, G: 200, B: 50, A: 255})
	got := Exposure(img, 1.5).NRGBAAt(1, 1)
	want := color.NRGBA{R: 150, G: 255, B: 75, A: 255}
	if got != want {
		t.Errorf("Exposure(1.5) = %v, want %v", got, want)
	}
}

func TestEnhance_IdentityFactors(t *testing.T) {
	img := uniform(8, 8, color.NRGBA{R: 12, G: 140, B: 220, A: 255})
	out := Enhance(img, 1, 1)
	if !bytes.Equal(img.Pix, out.Pix) {
		t.Error("Enhance(1, 1) changed pixels")
	}
}

// halves returns a grey image, left half at lo and right half at hi.
func halves(lo, hi uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			v := lo
			if x >= 4 {
				v = hi
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestEnhance_ContrastIsLinear(t *testing.T) {
	// Mean luma is 128, so a 1.3 factor moves 200 to 128+1.3*72 and 56 to
	// 128-1.3*72.
	out := Enhance(halves(56, 200), 1.3, 1)
	if got := out.NRGBAAt(7, 0).R; got != 222 {
		t.Errorf("bright pixel = %d, want 222", got)
	}
	if got := out.NRGBAAt(0, 0).R; got != 34 {
		t.Errorf("dark pixel = %d, want 34", got)
	}
}

func TestEnhance_ZeroContrastIsFlat(t *testing.T) {
	out := Enhance(halves(56, 200), 0, 1)
	for _, x := range []int{0, 7} {
		if got := out.NRGBAAt(x, 0); got != (color.NRGBA{R: 128, G: 128, B: 128, A: 255}) {
			t.Errorf("pixel %d = %v, want flat 128 grey", x, got)
		}
	}
}

func TestEnhance_Saturation(t *testing.T) {
	img := uniform(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	// Luma is 124.2.
	got := Enhance(img, 1, 1.5).NRGBAAt(0, 0)
	if want := (color.NRGBA{R: 238, G: 88, B: 13, A: 255}); got != want {
		t.Errorf("Enhance(sat 1.5) = %v, want %v", got, want)
	}
	got = Enhance(img, 1, 0).NRGBAAt(0, 0)
	if want := (color.NRGBA{R: 124, G: 124, B: 124, A: 255}); got != want {
		t.Errorf("Enhance(sat 0) = %v, want %v", got, want)
	}
}

func TestVignette(t *testing.T) {
	img := uniform(101, 101, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	out := Vignette(img, 0.4)

	if c := out.NRGBAAt(50, 50); c.R != 200 {
		t.Errorf("centre R = %d, want 200", c.R)
	}
	corner := out.NRGBAAt(0, 0)
	if corner.R < 119 || corner.R > 120 {
		t.Errorf("corner R = %d, want ~120", corner.R)
	}
	if corner.A != 255 {
		t.Errorf("corner alpha = %d, want 255", corner.A)
	}
	edge := out.NRGBAAt(0, 50)
	if edge.R <= corner.R || edge.R >= 200 {
		t.Errorf("edge R = %d, want between corner %d and centre", edge.R, corner.R)
	}
}

func TestVignetteStrength(t *testing.T) {
	if got := VignetteStrength(1); got != 0.2 {
		t.Errorf("VignetteStrength(1) = %v, want 0.2", got)
	}
	if VignetteStrength(0.2) <= VignetteStrength(0.8) {
		t.Error("darker hours should vignette harder")
	}
}

// ---------------------------------------------------------------------------
// Backgrounds
// ---------------------------------------------------------------------------

func TestGradientImage_Rows(t *testing.T) {
	g := lighting.Gradient{
		Top:     lighting.RGB{R: 0, G: 0, B: 100},
		Horizon: lighting.RGB{R: 200, G: 100, B: 0},
		Bottom:  lighting.RGB{R: 50, G: 50, B: 50},
		Break:   0.5,
	}
	img := GradientImage(10, 100, g)

	top := img.NRGBAAt(3, 0)
	if top != (color.NRGBA{R: 0, G: 0, B: 100, A: 255}) {
		t.Errorf("row 0 = %v, want top colour", top)
	}
	mid := img.NRGBAAt(7, 50)
	if mid != (color.NRGBA{R: 200, G: 100, B: 0, A: 255}) {
		t.Errorf("row 50 = %v, want horizon colour", mid)
	}
	for x := range 10 {
		if img.NRGBAAt(x, 25) != img.NRGBAAt(0, 25) {
			t.Fatalf("row 25 not uniform at x=%d", x)
		}
	}
}

func TestAmbientGlow(t *testing.T) {
	img := AmbientGlow(200, 120, 0.7)
	centre := img.NRGBAAt(int(200*0.45), int(120*0.55))
	if centre.R == 0 {
		t.Error("glow pool centre is black")
	}
	if centre.R < centre.G || centre.G < centre.B {
		t.Errorf("glow %v is not warm", centre)
	}
	if none := AmbientGlow(50, 30, 0).NRGBAAt(25, 15); none.R != 0 {
		t.Errorf("zero-strength glow R = %d, want 0", none.R)
	}
}

func TestMeanLuminance(t *testing.T) {
	if got := MeanLuminance(uniform(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})); got < 0.999 {
		t.Errorf("white luminance = %v, want 1", got)
	}
	if got := MeanLuminance(uniform(4, 4, color.NRGBA{A: 255})); got != 0 {
		t.Errorf("black luminance = %v, want 0", got)
	}
	if got := MeanLuminance(image.NewNRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("empty luminance = %v, want 0", got)
	}
}

func TestReport_Elements(t *testing.T) {
	r := Report{Body: celestial.MoonBody, Stars: 200}
	if got := r.String(); got != "Moon, Stars" {
		t.Errorf("String() = %q", got)
	}
	if got := (Report{}).String(); got != "-" {
		t.Errorf("empty String() = %q, want -", got)
	}
}
