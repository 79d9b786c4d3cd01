package cron

import (
	"context"
	"log/slog"
	"time"
)

// Reloader re-reads the stored RBAC overrides.
type Reloader interface {
	Reload(ctx context.Context) error
}

type RBACJobs struct {
	evaluator Reloader
	interval  time.Duration
}

func NewRBACJobs(evaluator Reloader, interval time.Duration) *RBACJobs {
	return &RBACJobs{evaluator: evaluator, interval: interval}
}

func (j *RBACJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_rbac_overrides", j.interval, j.RefreshOverrides)
}

// RefreshOverrides picks up override edits made by another instance. On failure the
// evaluator has already fallen back to the defaults; the error is reported for the run metric.
func (j *RBACJobs) RefreshOverrides(ctx context.Context) error {
	if err := j.evaluator.Reload(ctx); err != nil {
		return err
	}
	slog.Debug("Cron: RBAC overrides refreshed")
	return nil
}
