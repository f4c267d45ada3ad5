package render

import (
	"image"
	"image/color"
	"math"

	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Exposure multiplies every channel by factor, the way a brightness
// enhancer does, leaving alpha alone.
func Exposure(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clamp8(float64(c.R) * factor),
			G: clamp8(float64(c.G) * factor),
			B: clamp8(float64(c.B) * factor),
			A: c.A,
		}
	})
}

// Tint blends a solid colour over img at opacity.
func Tint(img image.Image, c lighting.RGB, opacity float64) *image.NRGBA {
	b := img.Bounds()
	layer := imaging.New(b.Dx(), b.Dy(), c.NRGBA(255))
	return imaging.Overlay(img, layer, b.Min, opacity)
}

// Light applies a row's exposure then its tint.
func Light(img image.Image, p lighting.LightingParams) *image.NRGBA {
	out := Exposure(img, p.Brightness)
	if p.HasTint() {
		out = Tint(out, *p.Tint, p.TintOpacity)
	}
	return out
}

// Enhance applies contrast then saturation. Both factors are linear: contrast
// scales each channel's distance from the image's mean luma, saturation its
// distance from the pixel's own luma. 1 leaves the image unchanged and 0
// collapses it to flat grey or monochrome.
func Enhance(img image.Image, contrast, saturation float64) *image.NRGBA {
	out := imaging.Clone(img)
	if contrast != 1 {
		mean := math.Round(MeanLuminance(out) * 255)
		out = imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			return scaleFrom(c, mean, contrast)
		})
	}
	if saturation != 1 {
		out = imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			return scaleFrom(c, luma(c), saturation)
		})
	}
	return out
}

// scaleFrom moves each colour channel of c away from base by factor.
func scaleFrom(c color.NRGBA, base, factor float64) color.NRGBA {
	ch := func(v uint8) uint8 {
		return clamp8(math.Round(base + factor*(float64(v)-base)))
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// luma is the Rec. 601 luma of c in [0,255].
func luma(c color.NRGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Tonal band thresholds on HSV value.
const (
	brightValue = 0.6
	midValue    = 0.3
)

// AdjustPixel shifts a pixel's hue by p.Warmth (in hue cycles, wrapping)
// and scales saturation and value by tonal band:
//
//	v > 0.6  s *= sat      v *= 0.5 + 0.5b
//	v > 0.3  s *= 0.9·sat  v *= 0.7 + 0.3b
//	else                   v *= 0.5 + 0.5b
//
// The result depends only on c.
func AdjustPixel(c color.NRGBA, p lighting.LightingParams) color.NRGBA {
	in := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, v := in.Hsv()

	if p.Warmth != 0 {
		h = wrapHue(h + p.Warmth*360)
	}

	switch {
	case v > brightValue:
		s = math.Min(s*p.Saturation, 1)
		v *= 0.5 + p.Brightness*0.5
	case v > midValue:
		s = math.Min(s*p.Saturation*0.9, 1)
		v *= 0.7 + p.Brightness*0.3
	default:
		v *= 0.5 + p.Brightness*0.5
	}
	v = math.Min(v, 1)

	out := colorful.Hsv(h, s, v).Clamped()
	return color.NRGBA{
		R: uint8(out.R * 255),
		G: uint8(out.G * 255),
		B: uint8(out.B * 255),
		A: c.A,
	}
}

// wrapHue maps degrees into [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// AdjustColor applies AdjustPixel to every pixel.
func AdjustColor(img image.Image, p lighting.LightingParams) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return AdjustPixel(c, p)
	})
}

// Vignette darkens img toward its corners: each pixel is scaled by
// 1 - strength·d, where d is its distance from the centre normalised so the
// corners are at 1.
func Vignette(img image.Image, strength float64) *image.NRGBA {
	out := imaging.Clone(img)
	if strength <= 0 {
		return out
	}
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	cx, cy := float64(w-1)/2, float64(h-1)/2
	maxD := math.Hypot(cx, cy)
	if maxD == 0 {
		return out
	}
	for y := range h {
		row := out.Pix[y*out.Stride : y*out.Stride+w*4]
		dy := float64(y) - cy
		for x := range w {
			d := math.Hypot(float64(x)-cx, dy) / maxD
			f := 1 - strength*d
			i := x * 4
			row[i] = clamp8(float64(row[i]) * f)
			row[i+1] = clamp8(float64(row[i+1]) * f)
			row[i+2] = clamp8(float64(row[i+2]) * f)
		}
	}
	return out
}

// VignetteStrength is stronger for darker hours.
func VignetteStrength(brightness float64) float64 {
	return 0.2 + (1-brightness)*0.2
}
