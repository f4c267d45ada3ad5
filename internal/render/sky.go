package render

import (
	"fmt"
	"image"

	"github.com/aellingwood/skyforge/internal/celestial"
	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// DefaultSeed seeds the star field and clouds.
const DefaultSeed = 42

// DefaultBlur is the finishing blur sigma, enough to soften aliased edges.
const DefaultBlur = 0.5

// SkyOptions configures the photo-based sky renderer.
type SkyOptions struct {
	Table *lighting.Table
	Sun   celestial.Arc
	Moon  celestial.Arc
	Seed  uint64
	Blur  float64
}

// DefaultSkyOptions returns the options that reproduce the stock
// hourly overlay set.
func DefaultSkyOptions() SkyOptions {
	return SkyOptions{
		Table: lighting.Sky(),
		Sun:   celestial.SunArc,
		Moon:  celestial.MoonArc,
		Seed:  DefaultSeed,
		Blur:  DefaultBlur,
	}
}

// PhotoSky lights a background photograph for each hour and paints the
// sun, moon and stars over it.
type PhotoSky struct {
	src  *image.NRGBA
	opts SkyOptions
}

// NewPhotoSky creates a PhotoSky over src. Nil tables fall back to
// lighting.Sky.
func NewPhotoSky(src image.Image, opts SkyOptions) *PhotoSky {
	if opts.Table == nil {
		opts.Table = lighting.Sky()
	}
	return &PhotoSky{src: toNRGBA(src), opts: opts}
}

// Name implements Renderer.
func (p *PhotoSky) Name() string { return "photo" }

// Render implements Renderer. Lighting is applied to the photo before the
// sky elements so the sun and moon keep their own colour.
func (p *PhotoSky) Render(hour int) (*Frame, error) {
	if p.src == nil || p.src.Bounds().Empty() {
		return nil, fmt.Errorf("photo sky: empty background image")
	}
	h := float64(hour)
	params := p.opts.Table.Lookup(h)

	img := Light(p.src, params)

	body, pos := celestial.Resolve(p.opts.Sun, p.opts.Moon, h)
	report := Report{Hour: hour, Body: body, Brightness: params.Brightness}

	dc := gg.NewContextForImage(img)
	if body != celestial.SunBody {
		n, opacity, band := starField(h)
		if n > 0 {
			drawStars(dc, starRand(p.opts.Seed), n, opacity)
			report.Stars, report.StarBand = n, band
		}
	}
	if body != celestial.None {
		drawBody(dc, pos, celestial.StyleFor(body, h))
	}

	out := imaging.Clone(dc.Image())
	if p.opts.Blur > 0 {
		out = imaging.Blur(out, p.opts.Blur)
	}
	report.Luminance = MeanLuminance(out)
	return &Frame{Hour: hour, Image: out, Report: report}, nil
}

// GradientOptions configures the procedurally drawn sky renderer.
type GradientOptions struct {
	Width    int
	Height   int
	Exposure *lighting.Table // exposure, tint, contrast and saturation
	Shade    *lighting.Table // brightness that drives vignette strength
	Sun      celestial.Arc
	Seed     uint64
	Blur     float64
	Clouds   bool
	Deck     bool
	Vignette bool
}

// DefaultGradientOptions returns a 1920×1080 sky with clouds, deck railing
// and vignette.
func DefaultGradientOptions() GradientOptions {
	return GradientOptions{
		Width:    1920,
		Height:   1080,
		Exposure: lighting.GradientTable(),
		Shade:    lighting.Sky(),
		Sun:      celestial.SunArc,
		Seed:     DefaultSeed,
		Blur:     DefaultBlur,
		Clouds:   true,
		Deck:     true,
		Vignette: true,
	}
}

// GradientSky draws each hour's sky from its palette, with the sun, stars,
// daytime clouds, and a deck railing in the foreground. The moon is not
// drawn; night hours read through the palette and star field.
type GradientSky struct {
	opts GradientOptions
}

// NewGradientSky creates a GradientSky. Zero dimensions and nil tables take
// their defaults.
func NewGradientSky(opts GradientOptions) *GradientSky {
	d := DefaultGradientOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.Exposure == nil {
		opts.Exposure = d.Exposure
	}
	if opts.Shade == nil {
		opts.Shade = d.Shade
	}
	return &GradientSky{opts: opts}
}

// Name implements Renderer.
func (g *GradientSky) Name() string { return "gradient" }

// Render implements Renderer.
func (g *GradientSky) Render(hour int) (*Frame, error) {
	h := float64(hour)
	exposure := g.opts.Exposure.Lookup(h)
	shade := g.opts.Shade.Lookup(h)

	img := GradientImage(g.opts.Width, g.opts.Height, lighting.SkyPalette(h))
	report := Report{Hour: hour, Brightness: exposure.Brightness, Deck: g.opts.Deck}

	dc := gg.NewContextForImage(img)
	pos, sunUp := g.opts.Sun.Position(h)
	if !sunUp {
		n, opacity, band := starField(h)
		if n > 0 {
			drawStars(dc, starRand(g.opts.Seed), n, opacity)
			report.Stars, report.StarBand = n, band
		}
	} else {
		drawBody(dc, pos, celestial.SunStyle(h))
		report.Body = celestial.SunBody
	}
	if g.opts.Clouds && lighting.BandOf(h) == lighting.Day {
		report.Clouds = drawClouds(dc, cloudRand(g.opts.Seed, hour), h)
	}
	if g.opts.Deck {
		drawDeck(dc)
	}

	out := Light(dc.Image(), exposure)
	if g.opts.Blur > 0 {
		out = imaging.Blur(out, g.opts.Blur)
	}
	if g.opts.Vignette {
		out = Vignette(out, VignetteStrength(shade.Brightness))
	}
	out = Enhance(out, exposure.Contrast, exposure.Saturation)

	report.Luminance = MeanLuminance(out)
	return &Frame{Hour: hour, Image: out, Report: report}, nil
}
