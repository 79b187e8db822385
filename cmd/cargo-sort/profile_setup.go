package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cargosort/internal/prof"
)

// setupProfiling starts the runtime profiles requested by flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = root.GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = root.GetString("memprofile"); err != nil {
		return nil, err
	}
	if opts.Trace, err = root.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
