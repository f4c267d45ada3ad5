package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate every asset",
	Long: "Run sky, restaurant, melody and chart in that order. Restaurant variants share " +
		"the sky output directory by default and replace the sky images for their hours.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)
		out := cmd.OutOrStdout()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		// Every input is loaded before the first image is written.
		skyR, err := skyRenderer(cfg)
		if err != nil {
			return fmt.Errorf("sky: %w", err)
		}
		restR, err := restaurantRenderer(cfg)
		if err != nil {
			return fmt.Errorf("restaurant: %w", err)
		}

		sky, err := buildSky(ctx, cfg, skyR, logger)
		if err != nil {
			return fmt.Errorf("sky: %w", err)
		}
		printBuild(out, "sky images", sky)

		rest, err := buildRestaurant(ctx, cfg, restR, logger)
		if err != nil {
			return fmt.Errorf("restaurant: %w", err)
		}
		printRestaurantSummary(out, rest)

		if _, err := generateMelody(cfg, logger); err != nil {
			return fmt.Errorf("melody: %w", err)
		}
		fmt.Fprintf(out, "Generated MIDI file: %s\n", cfg.Melody.Output)

		if err := generateChart(cfg, logger); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		fmt.Fprintf(out, "Chart written: %s\n", cfg.Chart.Output)
		return nil
	},
}

func init() {
	allCmd.Flags().IntP("workers", "w", 0, "render hours in parallel with N workers")
	allCmd.Flags().String("format", "", "image format: jpeg, png or webp")

	rootCmd.AddCommand(allCmd)
}
