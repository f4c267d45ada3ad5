// Package chart plots a lighting table and the celestial arcs over the day
// so the hourly curves can be reviewed at a glance.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/aellingwood/skyforge/internal/celestial"
	"github.com/aellingwood/skyforge/internal/lighting"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// sampleStep is the arc sampling interval in hours.
const sampleStep = 0.25

// Options selects what to plot.
type Options struct {
	Table  *lighting.Table
	Sun    celestial.Arc
	Moon   celestial.Arc
	Width  int // pixels
	Height int
}

// DefaultOptions plots the sky table with both arcs at 1200×500.
func DefaultOptions() Options {
	return Options{
		Table:  lighting.Sky(),
		Sun:    celestial.SunArc,
		Moon:   celestial.MoonArc,
		Width:  1200,
		Height: 500,
	}
}

// HourTicks marks the x axis every Step hours.
type HourTicks struct {
	Step float64
}

func (t HourTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%02.0f:00", v)})
	}
	return ticks
}

var (
	brightnessColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	tintColor       = color.RGBA{R: 200, G: 90, B: 40, A: 255}
	sunColor        = color.RGBA{R: 230, G: 170, B: 0, A: 255}
	moonColor       = color.RGBA{R: 80, G: 100, B: 200, A: 255}
)

// Render draws the chart and returns it as an image.
func Render(opts Options) (image.Image, error) {
	if opts.Table == nil {
		opts.Table = lighting.Sky()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1200, 500
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Lighting table %q (mean brightness %.2f)", opts.Table.Name(), MeanBrightness(opts.Table))
	p.X.Label.Text = "hour"
	p.Y.Label.Text = "value"
	p.X.Min, p.X.Max = 0, 24
	p.Y.Min = 0
	p.X.Tick.Marker = HourTicks{Step: 3}
	p.Add(plotter.NewGrid())

	brightness, tint := TableSeries(opts.Table)
	if err := addLine(p, "brightness", brightness, brightnessColor, nil); err != nil {
		return nil, err
	}
	dashed := []vg.Length{vg.Points(6), vg.Points(4)}
	if err := addLine(p, "tint opacity", tint, tintColor, dashed); err != nil {
		return nil, err
	}
	for i, seg := range ArcSegments(opts.Sun) {
		label := ""
		if i == 0 {
			label = "sun altitude"
		}
		if err := addLine(p, label, seg, sunColor, nil); err != nil {
			return nil, err
		}
	}
	for i, seg := range ArcSegments(opts.Moon) {
		label := ""
		if i == 0 {
			label = "moon altitude"
		}
		if err := addLine(p, label, seg, moonColor, nil); err != nil {
			return nil, err
		}
	}
	p.Legend.Top = true

	const dpi = 96
	width := vg.Length(opts.Width) * vg.Inch / dpi
	height := vg.Length(opts.Height) * vg.Inch / dpi
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(vgdraw.New(c))
	return c.Image(), nil
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, c color.Color, dashes []vg.Length) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting %s: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	line.Dashes = dashes
	p.Add(line)
	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

// Save renders the chart to a PNG file.
func Save(path string, opts Options) (err error) {
	img, err := Render(opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// TableSeries returns brightness and tint opacity for hours 0..23, using the
// table's fallback for hours it does not list.
func TableSeries(t *lighting.Table) (brightness, tint plotter.XYs) {
	brightness = make(plotter.XYs, 24)
	tint = make(plotter.XYs, 24)
	for h := range 24 {
		p := t.Lookup(float64(h))
		brightness[h] = plotter.XY{X: float64(h), Y: p.Brightness}
		tint[h] = plotter.XY{X: float64(h), Y: p.TintOpacity}
	}
	return brightness, tint
}

// ArcSegments samples arc over the day and returns the altitude (1−y) of each
// contiguous visible stretch.
func ArcSegments(arc celestial.Arc) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for h := 0.0; h <= 24; h += sampleStep {
		pos, ok := arc.Position(h)
		if !ok {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: h, Y: 1 - pos.Y})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// MeanBrightness is the average brightness over the 24 hours.
func MeanBrightness(t *lighting.Table) float64 {
	b, _ := TableSeries(t)
	ys := make([]float64, len(b))
	for i, xy := range b {
		ys[i] = xy.Y
	}
	return stat.Mean(ys, nil)
}
