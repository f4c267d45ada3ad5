package main

import (
	"fmt"

	"github.com/aellingwood/skyforge/internal/scaffold"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create new projects",
}

var newProjectCmd = &cobra.Command{
	Use:   "project <name>",
	Short: "Create a new project with a default config and seed photographs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := scaffold.NewProject(".", args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Project created: %s/\n", p.Dir)
		fmt.Fprintf(out, "  config:     %s\n", p.Config)
		fmt.Fprintf(out, "  background: %s\n", p.Background)
		fmt.Fprintf(out, "  restaurant: %s\n", p.Restaurant)
		return nil
	},
}

func init() {
	newCmd.AddCommand(newProjectCmd)

	rootCmd.AddCommand(newCmd)
}
