package pipeline

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// StageName is a strongly-typed identifier for a pipeline stage.
type StageName string

// Canonical stage names.
const (
	StageLoadConfig     StageName = "load_config"
	StageLoadPages      StageName = "load_pages"
	StageValidate       StageName = "validate"
	StageReconcile      StageName = "reconcile"
	StageResolveOrphans StageName = "resolve_orphans"
	StageWriteConfig    StageName = "write_config"
	StageAssemble       StageName = "assemble"
)

// stage is the function executed for one pipeline step.
type stage func(ctx context.Context, rs *runState) error

// stageDef pairs a stage name with its executing function.
type stageDef struct {
	Name StageName
	Fn   stage
}

// runStages executes stages in order, recording timing and stopping on the
// first error. A stage may end the run early by setting rs.halted; the
// remaining stages are then recorded as skipped.
func runStages(ctx context.Context, rs *runState, stages []stageDef) error {
	for i, st := range stages {
		if rs.halted {
			for _, rest := range stages[i:] {
				rs.recorder.IncStageResult(string(rest.Name), metrics.ResultSkipped)
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			rs.recorder.IncStageResult(string(st.Name), metrics.ResultSkipped)
			return fmt.Errorf("stage %s canceled: %w", st.Name, err)
		}

		t0 := time.Now()
		err := st.Fn(ctx, rs)
		dur := time.Since(t0)
		rs.report.StageDurations[st.Name] = dur
		rs.recorder.ObserveStageDuration(string(st.Name), dur)
		rs.logger.Debug("Stage finished",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if err != nil {
			rs.recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			return err
		}
		rs.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
	}
	return nil
}
