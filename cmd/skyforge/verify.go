package main

import (
	"fmt"

	"github.com/aellingwood/skyforge/internal/config"
	skyimg "github.com/aellingwood/skyforge/internal/image"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check generated images against their manifest",
	Long:  "Report images that are missing, modified, or resized since they were generated.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dirs := verifyDirs(cfg)
		if d, _ := cmd.Flags().GetString("dir"); d != "" {
			dirs = []string{d}
		}

		out := cmd.OutOrStdout()
		problems := 0
		for _, dir := range dirs {
			m, err := skyimg.LoadManifest(dir)
			if err != nil {
				return err
			}
			files := m.Files()
			if len(files) == 0 {
				fmt.Fprintf(out, "%s: no manifest entries\n", dir)
				continue
			}
			found := m.Verify()
			for _, p := range found {
				fmt.Fprintf(out, "  ✗ %s\n", p)
			}
			fmt.Fprintf(out, "%s: %d files, %d problems\n", dir, len(files), len(found))
			problems += len(found)
		}
		if problems > 0 {
			return fmt.Errorf("verification failed: %d problems", problems)
		}
		return nil
	},
}

// verifyDirs lists the output directories with manifests, without
// duplicates.
func verifyDirs(cfg *config.Config) []string {
	dirs := []string{cfg.Output.Dir}
	if rd := cfg.RestaurantDir(); rd != cfg.Output.Dir {
		dirs = append(dirs, rd)
	}
	return dirs
}

func init() {
	verifyCmd.Flags().String("dir", "", "verify only this directory")

	rootCmd.AddCommand(verifyCmd)
}
