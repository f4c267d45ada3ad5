package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var melodyCmd = &cobra.Command{
	Use:   "melody",
	Short: "Write the theme melody as a MIDI file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("output") {
			cfg.Melody.Output, _ = f.GetString("output")
		}
		if f.Changed("tempo") {
			cfg.Melody.Tempo, _ = f.GetFloat64("tempo")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		score, err := generateMelody(cfg, newLogger(cmd, cfg))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated MIDI file: %s\n", cfg.Melody.Output)
		fmt.Fprintf(cmd.OutOrStdout(), "Duration: %s at %g BPM\n", score.Duration(), score.Tempo)
		return nil
	},
}

func init() {
	melodyCmd.Flags().StringP("output", "o", "", "MIDI file path (default from config)")
	melodyCmd.Flags().Float64("tempo", 0, "tempo in beats per minute")

	rootCmd.AddCommand(melodyCmd)
}
