package metrics

import (
	"time"

	"github.com/ewoodward/gridshift/core/results"
)

// DayEvent wraps one simulated day result for recording.
type DayEvent struct {
	Result results.DayResult
	RunID  string
	Time   time.Time
}

// RunEvent summarises a completed simulation run.
type RunEvent struct {
	RunID     string
	Summaries []results.Summary
	Days      int
	Duration  time.Duration
	Time      time.Time
}

// Sink is the base contract for metrics backends. Sinks additionally
// implement the recorder interfaces for the events they care about.
type Sink interface {
	Close() error
}

// DayRecorder records per-day simulation outcomes.
type DayRecorder interface {
	RecordDay(ev DayEvent) error
}

// RunRecorder records run-level summaries.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// NopSink implements Sink and every recorder with no-op methods.
type NopSink struct{}

func (NopSink) Close() error { return nil }

func (NopSink) RecordDay(DayEvent) error { return nil }
func (NopSink) RecordRun(RunEvent) error { return nil }
