package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cargosort/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cargo-sort [flags] [path...]",
	Short: "Sort and format the dependency tables of Cargo.toml manifests",
	Long: `cargo-sort checks and rewrites Cargo.toml manifests so that dependency
tables and their entries appear in lexical order. Comments, blank-line groups and
nested tables travel with the entries they belong to.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSort,
}

// main registers commands and flags and executes the root command.
// Any returned error exits with status 1.
func main() {
	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	colorMode := modeAuto
	rootCmd.PersistentFlags().Var(&colorMode, "color", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per manifest")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.SetArgs(cargoArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cargoArgs drops the subcommand name cargo passes when run as `cargo sort`.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "sort" {
		return args[1:]
	}
	return args
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
