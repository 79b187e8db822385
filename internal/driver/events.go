package driver

import "time"

// Stage describes a step of processing one manifest.
type Stage string

const (
	StageParse       Stage = "parse"
	StageSort        Stage = "sort"
	StageCheckFormat Stage = "check-format"
	StageWrite       Stage = "write"
)

// Status captures progress state of a manifest.
type Status string

const (
	StatusQueued   Status = "queued"
	StatusWorking  Status = "working"
	StatusSorted   Status = "sorted"
	StatusUnsorted Status = "unsorted"
	StatusWritten  Status = "written"
	StatusError    Status = "error"
)

// Final reports whether s ends the manifest's processing.
func (s Status) Final() bool {
	switch s {
	case StatusSorted, StatusUnsorted, StatusWritten, StatusError:
		return true
	}
	return false
}

// Event reports progress for a manifest.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
