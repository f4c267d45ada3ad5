package render

import (
	"fmt"
	"image"

	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/disintegration/imaging"
)

// DefaultSkyBlend is the opacity of the sky gradient laid over the photo.
const DefaultSkyBlend = 0.35

// RestaurantOptions configures the restaurant variant renderer.
type RestaurantOptions struct {
	Table    *lighting.Table
	SkyBlend float64
	Vignette bool
}

// DefaultRestaurantOptions returns the stock variant settings.
func DefaultRestaurantOptions() RestaurantOptions {
	return RestaurantOptions{
		Table:    lighting.Restaurant(),
		SkyBlend: DefaultSkyBlend,
		Vignette: true,
	}
}

// Restaurant re-lights a restaurant photograph for each hour.
type Restaurant struct {
	src  *image.NRGBA
	opts RestaurantOptions
}

// NewRestaurant creates a Restaurant renderer over src.
func NewRestaurant(src image.Image, opts RestaurantOptions) *Restaurant {
	if opts.Table == nil {
		opts.Table = lighting.Restaurant()
	}
	return &Restaurant{src: toNRGBA(src), opts: opts}
}

// Name implements Renderer.
func (r *Restaurant) Name() string { return "restaurant" }

// Render implements Renderer. Steps: exposure, per-pixel warmth and tonal
// scaling, sky gradient blend, ambient glow, contrast, saturation, vignette.
func (r *Restaurant) Render(hour int) (*Frame, error) {
	if r.src == nil || r.src.Bounds().Empty() {
		return nil, fmt.Errorf("restaurant: empty source image")
	}
	h := float64(hour)
	p := r.opts.Table.Lookup(h)
	w, ht := r.src.Bounds().Dx(), r.src.Bounds().Dy()

	img := Exposure(r.src, p.Brightness)
	img = AdjustColor(img, p)

	if r.opts.SkyBlend > 0 {
		sky := GradientImage(w, ht, lighting.RestaurantPalette(h))
		img = imaging.Overlay(img, sky, image.Point{}, r.opts.SkyBlend)
	}

	report := Report{Hour: hour, Brightness: p.Brightness}
	if p.Glow > 0 {
		img = imaging.Overlay(img, AmbientGlow(w, ht, p.Glow), image.Point{}, p.Glow)
		report.Glow = true
	}

	img = Enhance(img, p.Contrast, p.Saturation)
	if r.opts.Vignette {
		img = Vignette(img, VignetteStrength(p.Brightness))
	}

	report.Luminance = MeanLuminance(img)
	return &Frame{Hour: hour, Image: img, Report: report}, nil
}
