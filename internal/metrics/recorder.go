package metrics

import "time"

// ResultLabel enumerates per-file outcomes.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder defines observability hooks for command runs.
type Recorder interface {
	IncFileResult(command string, result ResultLabel)
	ObserveRunDuration(command string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFileResult(string, ResultLabel)        {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
