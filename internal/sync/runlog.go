package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/log"
)

// RunStore persists orchestrator run records.
type RunStore interface {
	InsertRun(ctx context.Context, run *db.CrawlerRunModel) error
	UpdateRun(ctx context.Context, run *db.CrawlerRunModel) error
}

// RunResult is what LogEnd records about a finished run.
type RunResult struct {
	Totals   Totals
	Duration time.Duration
	Err      error
	LogTail  []string
}

// Success applies the partial-success rule: a run with some writes counts as
// successful even when individual items errored.
func (r RunResult) Success() bool {
	if r.Err != nil {
		return false
	}

	return r.Totals.Errors == 0 || r.Totals.Inserted+r.Totals.Updated > 0
}

// RunRecorder bookends a run in the monitoring table. Recording is
// best-effort: its own failures never block or fail the sync.
type RunRecorder struct {
	store  RunStore
	logger log.Logger
}

func NewRunRecorder(store RunStore, logger log.Logger) *RunRecorder {
	return &RunRecorder{store: store, logger: logger}
}

// LogStart inserts a running record and returns its id,
// or an empty string when the insert failed.
func (r *RunRecorder) LogStart(ctx context.Context) string {
	run := &db.CrawlerRunModel{
		Id:        uuid.New().String(),
		StartedAt: time.Now(),
		Status:    db.RunStatusRunning,
	}

	if err := r.store.InsertRun(ctx, run); err != nil {
		r.logger.Warnf("failed to record run start: %v", err)
		return ""
	}

	return run.Id
}

// LogEnd finalizes the record created by LogStart. A missing run id (failed
// LogStart) and store failures are swallowed.
func (r *RunRecorder) LogEnd(ctx context.Context, runId string, result RunResult) {
	if runId == "" {
		return
	}

	now := time.Now()
	status := db.RunStatusFailed
	if result.Success() {
		status = db.RunStatusCompleted
	}

	var errorMessage *string
	if result.Err != nil {
		msg := result.Err.Error()
		errorMessage = &msg
	}

	logTail := result.LogTail
	if len(logTail) > 100 {
		logTail = logTail[len(logTail)-100:]
	}

	run := &db.CrawlerRunModel{
		Id:              runId,
		CompletedAt:     &now,
		Status:          status,
		ItemsInserted:   result.Totals.Inserted,
		ItemsUpdated:    result.Totals.Updated,
		ItemsErrors:     result.Totals.Errors,
		DurationSeconds: result.Duration.Seconds(),
		ErrorMessage:    errorMessage,
		Logs:            logTail,
	}

	if err := r.store.UpdateRun(ctx, run); err != nil {
		r.logger.Debugf("failed to record run end: %v", err)
	}
}
