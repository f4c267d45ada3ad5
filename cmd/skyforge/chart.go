package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Plot a lighting table and the sun and moon arcs",
	Long:  "Plot brightness, tint opacity and the celestial altitudes over the day as a PNG.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("output") {
			cfg.Chart.Output, _ = f.GetString("output")
		}
		if f.Changed("table") {
			cfg.Chart.Table, _ = f.GetString("table")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := generateChart(cfg, newLogger(cmd, cfg)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart written: %s\n", cfg.Chart.Output)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringP("output", "o", "", "PNG path (default from config)")
	chartCmd.Flags().String("table", "", "built-in table: sky, gradient or restaurant")

	rootCmd.AddCommand(chartCmd)
}
