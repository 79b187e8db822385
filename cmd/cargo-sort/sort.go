package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cargosort/internal/config"
	"cargosort/internal/driver"
)

var errSortFailed = errors.New("cargo-sort failed")

func init() {
	flags := rootCmd.Flags()
	flags.BoolP("check", "c", false, "exit with status 1 when a manifest is not sorted; never write")
	flags.BoolP("print", "p", false, "print the sorted manifest to stdout instead of writing it")
	flags.BoolP("no-format", "n", false, "only reorder; keep every untouched line byte for byte")
	flags.Bool("check-format", false, "also verify that formatting is stable and preserves values")
	flags.BoolP("workspace", "w", false, "also sort every workspace member")
	flags.BoolP("grouped", "g", false, "sort blank-line separated groups of entries independently")
	flags.StringSliceP("order", "o", nil, "table order, e.g. package,dependencies,features")
	flags.IntP("jobs", "j", 0, "number of manifests processed in parallel (0 = GOMAXPROCS)")
	flags.Bool("cache", false, "cache check verdicts under $XDG_CACHE_HOME/cargo-sort")
	flags.String("format", "text", "output format (text|json)")
	uiMode := modeAuto
	flags.Var(&uiMode, "ui", "progress UI (auto|on|off)")
}

type sortFlags struct {
	check, print, noFormat, checkFormat bool
	workspace, grouped, cache          bool
	order                              []string
	jobs                               int
	outputFormat                       string
	ui                                 autoMode
	quiet, timings                     bool
	maxDiagnostics                     int
}

func readSortFlags(cmd *cobra.Command) (sortFlags, error) {
	var (
		f    sortFlags
		errs []error
	)
	flags := cmd.Flags()
	get := func(name string, dst *bool) {
		v, err := flags.GetBool(name)
		errs = append(errs, err)
		*dst = v
	}
	get("check", &f.check)
	get("print", &f.print)
	get("no-format", &f.noFormat)
	get("check-format", &f.checkFormat)
	get("workspace", &f.workspace)
	get("grouped", &f.grouped)
	get("cache", &f.cache)

	var err error
	f.order, err = flags.GetStringSlice("order")
	errs = append(errs, err)
	f.jobs, err = flags.GetInt("jobs")
	errs = append(errs, err)
	f.outputFormat, err = flags.GetString("format")
	errs = append(errs, err)
	f.ui, err = autoFlag(flags, "ui")
	errs = append(errs, err)

	root := cmd.Root().PersistentFlags()
	f.quiet, err = root.GetBool("quiet")
	errs = append(errs, err)
	f.timings, err = root.GetBool("timings")
	errs = append(errs, err)
	f.maxDiagnostics, err = root.GetInt("max-diagnostics")
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return f, err
	}
	if f.check && f.print {
		return f, errors.New("--check cannot be used with --print")
	}
	switch f.outputFormat {
	case "text", "json":
	default:
		return f, fmt.Errorf("unsupported output format %q (expected text|json)", f.outputFormat)
	}
	if f.print && f.outputFormat != "text" {
		return f, errors.New("--print is only supported with text output")
	}
	return f, nil
}

func (f sortFlags) mode() driver.Mode {
	switch {
	case f.check:
		return driver.ModeCheck
	case f.print:
		return driver.ModePrint
	}
	return driver.ModeWrite
}

func runSort(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := sortMain(cmd, args)
	if err != nil && !errors.Is(err, errSortFailed) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	}
	return err
}

func sortMain(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	f, err := readSortFlags(cmd)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiles()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loaded, err := config.Load(".")
	if err != nil {
		return err
	}

	opts := driver.Options{
		Mode:           f.mode(),
		Config:         loaded.Config,
		Format:         !f.noFormat,
		Grouped:        f.grouped,
		TableOrder:     trimOrder(f.order),
		CheckFormat:    f.checkFormat,
		Workspace:      f.workspace,
		Jobs:           f.jobs,
		MaxDiagnostics: f.maxDiagnostics,
	}
	if f.cache {
		cache, err := driver.OpenDiskCache("cargo-sort")
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		opts.Cache = cache
	}

	var results []driver.Result
	if !f.print && !f.quiet && f.outputFormat == "text" && f.ui.enabled(os.Stdout) {
		results, err = runSortWithUI(ctx, args, opts)
	} else {
		results, err = driver.SortPaths(ctx, args, opts)
	}
	if err != nil {
		return err
	}

	failed := false
	switch f.outputFormat {
	case "json":
		failed, err = renderJSON(os.Stdout, results, opts.Mode)
		if err != nil {
			return err
		}
	default:
		failed = renderText(os.Stdout, os.Stderr, results, opts.Mode, f.quiet)
	}
	if f.timings {
		printTimings(os.Stderr, results)
	}
	if failed {
		return errSortFailed
	}
	return nil
}

func trimOrder(order []string) []string {
	out := make([]string, 0, len(order))
	for _, o := range order {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func setupColor(cmd *cobra.Command) error {
	mode, err := autoFlag(cmd.Root().PersistentFlags(), "color")
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stdout)
	return nil
}
