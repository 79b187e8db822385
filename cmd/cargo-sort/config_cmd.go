package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cargosort/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved formatting configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		loaded, err := config.Load(".")
		if err != nil {
			return err
		}
		if loaded.Path != "" {
			fmt.Fprintf(os.Stdout, "# loaded from %s\n", loaded.Path)
		} else {
			fmt.Fprintln(os.Stdout, "# defaults (no tomlfmt.toml found)")
		}
		return config.Encode(os.Stdout, loaded.Config)
	},
}
