package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long:  "Print the configuration after merging the defaults with the config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		var data []byte
		switch format {
		case "yaml", "yml":
			data, err = cfg.YAML()
		case "toml":
			data, err = cfg.TOML()
		default:
			return fmt.Errorf("unknown format %q: use yaml or toml", format)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().String("format", "yaml", "output format: yaml or toml")

	rootCmd.AddCommand(configCmd)
}
