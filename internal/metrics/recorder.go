package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFatal   ResultLabel = "fatal"
)

// RunOutcomeLabel enumerates the final status of a sync run.
type RunOutcomeLabel string

const (
	RunUpdated   RunOutcomeLabel = "updated"
	RunUnchanged RunOutcomeLabel = "unchanged"
	RunFailed    RunOutcomeLabel = "failed"
)

// ChangeLabel enumerates the kinds of navigation node changes a run reports.
type ChangeLabel string

const (
	ChangeAdded              ChangeLabel = "added"
	ChangeRemoved            ChangeLabel = "removed"
	ChangeRenamed            ChangeLabel = "renamed"
	ChangeOrphaned           ChangeLabel = "orphaned"
	ChangePlaceholderCreated ChangeLabel = "placeholder_created"
	ChangePlaceholderPruned  ChangeLabel = "placeholder_pruned"
)

// Recorder defines observability hooks for sync runs and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRunOutcome(outcome RunOutcomeLabel)
	AddNodeChanges(change ChangeLabel, n int)
	SetPageCount(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)              {}
func (NoopRecorder) AddNodeChanges(ChangeLabel, int)            {}
func (NoopRecorder) SetPageCount(int)                           {}
