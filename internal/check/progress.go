package check

import "time"

// Stage describes a phase of one check.
type Stage string

const (
	// StageRead loads both input files.
	StageRead Stage = "read"
	// StageParse extracts the expected fixes.
	StageParse Stage = "parse"
	// StageLocate searches the tool output.
	StageLocate Stage = "locate"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the case is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the case is in the given stage.
	StatusWorking Status = "working"
	// StatusDone indicates the case finished; see Event.Failed for the verdict.
	StatusDone Status = "done"
	// StatusError indicates the case hit a fatal error.
	StatusError Status = "error"
)

// Event reports progress for one case.
type Event struct {
	Case    string
	Stage   Stage
	Status  Status
	Failed  bool // set with StatusDone when some fragment did not match
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; batch runs emit from several goroutines.
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
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
