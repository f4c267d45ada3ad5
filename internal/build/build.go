// Package build runs a renderer over a set of hours, writes each frame to
// the output directory and records it in the directory's manifest.
package build

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	skyimg "github.com/aellingwood/skyforge/internal/image"
	"github.com/aellingwood/skyforge/internal/render"
	"github.com/jonboulle/clockwork"
)

// ErrSourceMissing reports that an input photograph does not exist.
var ErrSourceMissing = errors.New("source image not found")

// AllHours is the full day, 00 through 23.
func AllHours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}

// Options controls a Build.
type Options struct {
	Generator string // manifest label, e.g. "sky"
	Hours     []int
	OutputDir string
	Format    skyimg.Format
	Quality   int
	Workers   int  // <= 1 renders sequentially in hour order
	Manifest  bool // record outputs in OutputDir/manifest.json
	Logger    *slog.Logger
	Clock     clockwork.Clock
}

// Result summarises a completed build. Files and Reports follow the order of
// Options.Hours.
type Result struct {
	Generator    string
	Files        []string
	Reports      []render.Report
	ManifestPath string
	Duration     time.Duration
}

// Builder renders and writes one generator's images.
type Builder struct {
	renderer render.Renderer
	options  Options
}

// NewBuilder creates a Builder. Missing options take defaults: every hour,
// JPEG at quality 90, a discarding logger and the real clock.
func NewBuilder(r render.Renderer, opts Options) *Builder {
	if opts.Hours == nil {
		opts.Hours = AllHours()
	}
	if opts.Format == "" {
		opts.Format = skyimg.JPEG
	}
	if opts.Quality <= 0 {
		opts.Quality = 90
	}
	if opts.Generator == "" {
		opts.Generator = r.Name()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Builder{renderer: r, options: opts}
}

// Build renders every configured hour. Frames are written as they finish;
// the manifest is saved only when every hour succeeded.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	opts := b.options
	start := opts.Clock.Now()

	for _, h := range opts.Hours {
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("invalid hour %d: must be 0-23", h)
		}
	}
	if opts.OutputDir == "" {
		return nil, errors.New("output directory not set")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var manifest *skyimg.Manifest
	if opts.Manifest {
		var err error
		manifest, err = skyimg.LoadManifest(opts.OutputDir)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{
		Generator: opts.Generator,
		Files:     make([]string, len(opts.Hours)),
		Reports:   make([]render.Report, len(opts.Hours)),
	}

	renderHour := func(i, hour int) error {
		frame, err := b.renderer.Render(hour)
		if err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
		path := skyimg.OutputPath(opts.OutputDir, hour, opts.Format)
		if err := skyimg.WriteFile(path, frame.Image, opts.Format, opts.Quality); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if manifest != nil {
			if err := manifest.Record(entryFor(opts, hour, frame)); err != nil {
				return err
			}
		}

		result.Files[i] = path
		result.Reports[i] = frame.Report
		opts.Logger.Info("generated image",
			"generator", opts.Generator,
			"hour", fmt.Sprintf("%02d", hour),
			"path", path,
			"brightness", fmt.Sprintf("%.2f", frame.Report.Brightness),
			"elements", frame.Report.String(),
		)
		return nil
	}

	var err error
	if opts.Workers > 1 {
		err = renderParallel(ctx, opts.Hours, opts.Workers, renderHour)
	} else {
		err = renderSequential(ctx, opts.Hours, renderHour)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Generator, err)
	}

	if manifest != nil {
		if err := manifest.Save(opts.Clock.Now()); err != nil {
			return nil, fmt.Errorf("saving manifest: %w", err)
		}
		result.ManifestPath = filepath.Join(manifest.Dir(), skyimg.ManifestFile)
	}

	result.Duration = opts.Clock.Since(start)
	opts.Logger.Debug("build finished",
		"generator", opts.Generator,
		"images", len(result.Files),
		"duration", result.Duration,
	)
	return result, nil
}

func entryFor(opts Options, hour int, f *render.Frame) skyimg.Entry {
	b := f.Image.Bounds()
	return skyimg.Entry{
		File:       skyimg.FileName(hour, opts.Format),
		Generator:  opts.Generator,
		Hour:       hour,
		Format:     opts.Format,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Brightness: f.Report.Brightness,
		Elements:   f.Report.Elements(),
	}
}

// LoadSource opens an input photograph. A missing file is reported as
// ErrSourceMissing so callers can fail before writing anything.
func LoadSource(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("checking source %s: %w", path, err)
	}
	return skyimg.Open(path)
}
