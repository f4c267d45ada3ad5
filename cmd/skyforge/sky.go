package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aellingwood/skyforge/internal/build"
	"github.com/aellingwood/skyforge/internal/config"
	"github.com/spf13/cobra"
)

var skyCmd = &cobra.Command{
	Use:   "sky",
	Short: "Generate the hourly sky images",
	Long: "Render one sky image per hour into the output directory. Photo mode lights " +
		"the background photograph; gradient mode paints the sky from the hourly palettes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)

		ctx, cancel := signalContext(cmd)
		defer cancel()

		result, err := generateSky(ctx, cfg, logger)
		if err != nil {
			return err
		}
		printBuild(cmd.OutOrStdout(), "sky images", result)

		if watching, _ := cmd.Flags().GetBool("watch"); !watching {
			return nil
		}
		files := []string{configPath(cmd), cfg.Sky.Table}
		if cfg.Sky.Mode == config.ModePhoto {
			files = append(files, cfg.Sky.Background)
		}
		return watchInputs(ctx, logger, files, func(ctx context.Context) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			result, err := generateSky(ctx, cfg, newLogger(cmd, cfg))
			if err != nil {
				return err
			}
			printBuild(cmd.OutOrStdout(), "sky images", result)
			return nil
		})
	},
}

// resolveConfig loads the config, applies the command's changed flags and
// any command-specific adjustments, then validates the result.
func resolveConfig(cmd *cobra.Command, adjust ...func(*config.Config)) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.WithOverrides(flagOverrides(cmd))
	for _, fn := range adjust {
		fn(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagOverrides collects the flags set on the command line, keyed the way
// config.WithOverrides expects.
func flagOverrides(cmd *cobra.Command) map[string]any {
	f := cmd.Flags()
	changed := func(name string) bool {
		return f.Lookup(name) != nil && f.Changed(name)
	}

	o := map[string]any{}
	for _, name := range []string{"mode", "output", "format", "background", "table", "source"} {
		if changed(name) {
			v, _ := f.GetString(name)
			o[name] = v
		}
	}
	if changed("workers") {
		n, _ := f.GetInt("workers")
		o["workers"] = n
	}
	if changed("seed") {
		n, _ := f.GetUint64("seed")
		o["seed"] = n
	}
	if changed("hours") {
		h, _ := f.GetIntSlice("hours")
		o["hours"] = h
	}
	if changed("fit") {
		fit, _ := f.GetBool("fit")
		o["fit"] = fit
	}
	if changed("no-manifest") {
		off, _ := f.GetBool("no-manifest")
		o["manifest"] = !off
	}
	return o
}

func printBuild(w io.Writer, what string, r *build.Result) {
	fmt.Fprintf(w, "Generated %d %s in %s\n", len(r.Files), what, r.Duration.Round(time.Millisecond))
}

// addOutputFlags registers the flags shared by the image generators.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output directory (default from config)")
	cmd.Flags().String("format", "", "image format: jpeg, png or webp")
	cmd.Flags().IntP("workers", "w", 0, "render hours in parallel with N workers")
	cmd.Flags().IntSlice("hours", nil, "render only these hours, e.g. --hours 6,12,18")
	cmd.Flags().String("table", "", "lighting table override file (YAML or TOML)")
	cmd.Flags().Bool("no-manifest", false, "do not update manifest.json")
	cmd.Flags().Bool("watch", false, "regenerate when the inputs change")
}

func init() {
	addOutputFlags(skyCmd)
	skyCmd.Flags().String("mode", "", "sky mode: photo or gradient")
	skyCmd.Flags().String("background", "", "background photograph for photo mode")
	skyCmd.Flags().Uint64("seed", 0, "random seed for stars and clouds")
	skyCmd.Flags().Bool("fit", false, "crop and scale the background to the configured width and height")

	rootCmd.AddCommand(skyCmd)
}
