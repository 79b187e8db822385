package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cargosort/internal/driver"
	"cargosort/internal/ui"
)

type sortOutcome struct {
	results []driver.Result
	err     error
}

// runSortWithUI shows the progress model while SortPaths runs. A single
// manifest gets no UI.
func runSortWithUI(ctx context.Context, paths []string, opts driver.Options) ([]driver.Result, error) {
	files, err := driver.ResolveManifests(ctx, paths, opts.Workspace)
	if err != nil || len(files) < 2 {
		return driver.SortPaths(ctx, paths, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan sortOutcome, 1)
	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.SortPaths(ctx, paths, optsCopy)
		outcomeCh <- sortOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("cargo-sort", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы SortPaths не заблокировался
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
