// Package render composites the per-hour sky and restaurant images.
//
// A Renderer turns an hour into a Frame. Renderers never touch the
// filesystem: sources are decoded by the caller and frames are encoded by
// internal/image. Each Render call owns its pixel buffer and random
// generators, so frames for different hours can be rendered concurrently.
package render

import (
	"image"
	"math/rand/v2"
	"strings"

	"github.com/aellingwood/skyforge/internal/celestial"
	"github.com/aellingwood/skyforge/internal/lighting"
)

// Renderer renders one frame per hour.
type Renderer interface {
	Name() string
	Render(hour int) (*Frame, error)
}

// Frame is a rendered image and a summary of what went into it.
type Frame struct {
	Hour   int
	Image  *image.NRGBA
	Report Report
}

// Report lists the layers drawn into a frame.
type Report struct {
	Hour       int
	Body       celestial.Body
	Stars      int
	StarBand   lighting.Band
	Clouds     int
	Deck       bool
	Glow       bool
	Brightness float64
	Luminance  float64 // mean luma of the finished frame, 0..1
}

// Elements returns the visible sky elements, e.g. ["Moon", "Stars"].
func (r Report) Elements() []string {
	var out []string
	switch r.Body {
	case celestial.SunBody:
		out = append(out, "Sun")
	case celestial.MoonBody:
		out = append(out, "Moon")
	}
	if r.Stars > 0 {
		out = append(out, "Stars")
	}
	if r.Clouds > 0 {
		out = append(out, "Clouds")
	}
	return out
}

// String formats the elements as a comma separated list.
func (r Report) String() string {
	el := r.Elements()
	if len(el) == 0 {
		return "-"
	}
	return strings.Join(el, ", ")
}

// Random streams. Stars share one stream for every hour so all night
// frames show the same field; clouds get a stream per hour.
const (
	starStream  = 1
	cloudStream = 100
)

func starRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, starStream))
}

func cloudRand(seed uint64, hour int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, cloudStream+uint64(hour)))
}
