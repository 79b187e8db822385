package driver

import (
	"cargosort/internal/diag"
	"cargosort/internal/format"
	"cargosort/internal/observ"
	"cargosort/internal/source"
)

// Mode selects what happens with the sorted output.
type Mode uint8

const (
	// ModeWrite rewrites manifests whose text changed.
	ModeWrite Mode = iota
	// ModeCheck only reports whether manifests are sorted.
	ModeCheck
	// ModePrint returns the output in Result.Output.
	ModePrint
)

func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModePrint:
		return "print"
	default:
		return "write"
	}
}

type Options struct {
	Mode        Mode
	Config      format.Config
	Format      bool // false for --no-format
	Grouped     bool
	TableOrder  []string
	CheckFormat bool
	Workspace   bool
	Jobs        int
	// Cache short-circuits check mode for manifests already verified sorted.
	Cache          *DiskCache
	Progress       ProgressSink
	MaxDiagnostics int
}

// Result describes one manifest.
type Result struct {
	Path string
	// Sorted is true when the manifest was already in order.
	Sorted bool
	// Differs is true when the output bytes differ from the file.
	Differs         bool
	Written         bool
	Cached          bool
	GroupingIgnored bool
	Output          []byte
	Stability       *format.Stability
	Diagnostics     *diag.Bag
	FileSet         *source.FileSet
	Timer           *observ.Timer
	Err             error
}

// Failed reports whether the manifest makes the run fail under mode.
func (r Result) Failed(mode Mode) bool {
	if r.Err != nil {
		return true
	}
	return mode == ModeCheck && !r.Sorted
}
