package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aellingwood/skyforge/internal/build"
	"github.com/aellingwood/skyforge/internal/chart"
	"github.com/aellingwood/skyforge/internal/config"
	skyimg "github.com/aellingwood/skyforge/internal/image"
	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/aellingwood/skyforge/internal/melody"
	"github.com/aellingwood/skyforge/internal/render"
)

// resolveTable overlays the override file at path on base. An empty path
// returns base unchanged.
func resolveTable(base *lighting.Table, path string) (*lighting.Table, error) {
	if path == "" {
		return base, nil
	}
	return lighting.LoadTable(path, base)
}

func buildOptions(cfg *config.Config, generator, dir string, hours []int, quality int, logger *slog.Logger) build.Options {
	// Format was checked by Validate.
	format, _ := skyimg.ParseFormat(cfg.Output.Format)
	return build.Options{
		Generator: generator,
		Hours:     hours,
		OutputDir: dir,
		Format:    format,
		Quality:   quality,
		Workers:   cfg.Output.Workers,
		Manifest:  cfg.Output.Manifest,
		Logger:    logger,
	}
}

// skyRenderer returns the renderer for the configured sky mode. Photo mode
// loads the background here, so a missing photo fails with
// build.ErrSourceMissing before anything is written.
func skyRenderer(cfg *config.Config) (render.Renderer, error) {
	sc := cfg.Sky
	if sc.Mode == config.ModeGradient {
		opts := render.DefaultGradientOptions()
		exposure, err := resolveTable(opts.Exposure, sc.Table)
		if err != nil {
			return nil, err
		}
		opts.Exposure = exposure
		opts.Width, opts.Height = sc.Width, sc.Height
		opts.Seed = sc.Seed
		opts.Blur = sc.Blur
		opts.Clouds, opts.Deck, opts.Vignette = sc.Clouds, sc.Deck, sc.Vignette
		return render.NewGradientSky(opts), nil
	}

	src, err := build.LoadSource(sc.Background)
	if err != nil {
		return nil, err
	}
	if sc.Fit && sc.Width > 0 && sc.Height > 0 {
		src = skyimg.Fit(src, sc.Width, sc.Height)
	}
	opts := render.DefaultSkyOptions()
	table, err := resolveTable(opts.Table, sc.Table)
	if err != nil {
		return nil, err
	}
	opts.Table = table
	opts.Seed = sc.Seed
	opts.Blur = sc.Blur
	return render.NewPhotoSky(src, opts), nil
}

// restaurantRenderer loads the restaurant photo and its lighting table.
func restaurantRenderer(cfg *config.Config) (render.Renderer, error) {
	rc := cfg.Restaurant
	src, err := build.LoadSource(rc.Source)
	if err != nil {
		return nil, err
	}
	opts := render.DefaultRestaurantOptions()
	table, err := resolveTable(opts.Table, rc.Table)
	if err != nil {
		return nil, err
	}
	opts.Table = table
	opts.SkyBlend = rc.SkyBlend
	opts.Vignette = rc.Vignette
	return render.NewRestaurant(src, opts), nil
}

func buildSky(ctx context.Context, cfg *config.Config, r render.Renderer, logger *slog.Logger) (*build.Result, error) {
	logger.Info("generating sky images", "mode", r.Name(), "hours", len(cfg.Sky.Hours), "dir", cfg.Output.Dir)
	opts := buildOptions(cfg, "sky", cfg.Output.Dir, cfg.Sky.Hours, cfg.Sky.Quality, logger)
	return build.NewBuilder(r, opts).Build(ctx)
}

func buildRestaurant(ctx context.Context, cfg *config.Config, r render.Renderer, logger *slog.Logger) (*build.Result, error) {
	logger.Info("generating restaurant variants", "source", cfg.Restaurant.Source, "hours", len(cfg.Restaurant.Hours), "dir", cfg.RestaurantDir())
	opts := buildOptions(cfg, "restaurant", cfg.RestaurantDir(), cfg.Restaurant.Hours, cfg.Restaurant.Quality, logger)
	return build.NewBuilder(r, opts).Build(ctx)
}

func generateSky(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*build.Result, error) {
	r, err := skyRenderer(cfg)
	if err != nil {
		return nil, err
	}
	return buildSky(ctx, cfg, r, logger)
}

func generateRestaurant(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*build.Result, error) {
	r, err := restaurantRenderer(cfg)
	if err != nil {
		return nil, err
	}
	return buildRestaurant(ctx, cfg, r, logger)
}

func generateMelody(cfg *config.Config, logger *slog.Logger) (melody.Score, error) {
	score := melody.Default()
	score.Tempo = cfg.Melody.Tempo
	if cfg.Melody.TrackName != "" {
		score.Name = cfg.Melody.TrackName
	}
	if err := score.WriteFile(cfg.Melody.Output); err != nil {
		return score, err
	}
	logger.Info("generated melody",
		"path", cfg.Melody.Output,
		"notes", len(score.Notes()),
		"tempo", score.Tempo,
		"duration", score.Duration(),
	)
	return score, nil
}

func generateChart(cfg *config.Config, logger *slog.Logger) error {
	cc := cfg.Chart
	opts := chart.DefaultOptions()
	opts.Table = lighting.ByName(cc.Table)
	if opts.Table == nil {
		return fmt.Errorf("unknown lighting table %q", cc.Table)
	}
	if cc.Width > 0 && cc.Height > 0 {
		opts.Width, opts.Height = cc.Width, cc.Height
	}
	if err := chart.Save(cc.Output, opts); err != nil {
		return err
	}
	logger.Info("generated chart", "path", cc.Output, "table", cc.Table, "mean_brightness", chart.MeanBrightness(opts.Table))
	return nil
}
