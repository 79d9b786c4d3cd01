package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
)

// FactsRefresher reloads a month's source rows into the facts cache.
type FactsRefresher interface {
	RefreshFacts(ctx context.Context, month profitability.Month) error
}

type FactsJobs struct {
	refresher FactsRefresher
	interval  time.Duration
	now       func() time.Time
}

func NewFactsJobs(refresher FactsRefresher, interval time.Duration) *FactsJobs {
	return &FactsJobs{refresher: refresher, interval: interval, now: time.Now}
}

func (j *FactsJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_current_month_facts", j.interval, j.RefreshCurrentMonth)
}

// RefreshCurrentMonth keeps the month still receiving timesheets warm and no staler than
// one interval. Closed months keep whatever the request path cached.
func (j *FactsJobs) RefreshCurrentMonth(ctx context.Context) error {
	month := profitability.MonthOf(j.now())
	if err := j.refresher.RefreshFacts(ctx, month); err != nil {
		return fmt.Errorf("failed to refresh facts for %s: %w", month, err)
	}
	slog.Debug("Cron: facts cache refreshed", "month", month.String())
	return nil
}
