package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aellingwood/skyforge/internal/build"
	"github.com/aellingwood/skyforge/internal/config"
	"github.com/spf13/cobra"
)

var restaurantCmd = &cobra.Command{
	Use:   "restaurant",
	Short: "Generate the time-of-day restaurant variants",
	Long:  "Re-light the restaurant photograph for each configured hour and write one variant per hour.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, restaurantFlags(cmd))
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)

		ctx, cancel := signalContext(cmd)
		defer cancel()

		result, err := generateRestaurant(ctx, cfg, logger)
		if err != nil {
			return err
		}
		printRestaurantSummary(cmd.OutOrStdout(), result)

		if watching, _ := cmd.Flags().GetBool("watch"); !watching {
			return nil
		}
		files := []string{configPath(cmd), cfg.Restaurant.Source, cfg.Restaurant.Table}
		return watchInputs(ctx, logger, files, func(ctx context.Context) error {
			cfg, err := resolveConfig(cmd, restaurantFlags(cmd))
			if err != nil {
				return err
			}
			result, err := generateRestaurant(ctx, cfg, newLogger(cmd, cfg))
			if err != nil {
				return err
			}
			printRestaurantSummary(cmd.OutOrStdout(), result)
			return nil
		})
	},
}

// restaurantFlags points the shared generator flags at the restaurant
// section of the config.
func restaurantFlags(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		f := cmd.Flags()
		if f.Changed("output") {
			cfg.Restaurant.Dir, _ = f.GetString("output")
		}
		if f.Changed("hours") {
			cfg.Restaurant.Hours, _ = f.GetIntSlice("hours")
		}
		if f.Changed("table") {
			cfg.Restaurant.Table, _ = f.GetString("table")
		}
	}
}

// clockLabel formats an hour on the 12-hour clock, e.g. "5:00 AM".
func clockLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}

func printRestaurantSummary(w io.Writer, r *build.Result) {
	printBuild(w, "restaurant variants", r)
	fmt.Fprintln(w, "\nGenerated images:")
	for i, rep := range r.Reports {
		fmt.Fprintf(w, "  • %s - %s\n", filepath.Base(r.Files[i]), clockLabel(rep.Hour))
	}
}

func init() {
	addOutputFlags(restaurantCmd)
	restaurantCmd.Flags().String("source", "", "restaurant photograph")

	rootCmd.AddCommand(restaurantCmd)
}
