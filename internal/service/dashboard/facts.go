package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/pkg/cache"
	"github.com/profitpulse/profitpulse-api/internal/pkg/metrics"
	engine "github.com/profitpulse/profitpulse-api/internal/service/profitability"
	"golang.org/x/sync/errgroup"
)

func factsCacheKey(month profitability.Month) string {
	return "facts:" + month.String()
}

// loadEngine loads the month's config and rows in parallel and indexes them. Config is
// read fresh on every call; only the raw rows are cached.
func (s *DashboardServiceImpl) loadEngine(ctx context.Context, month profitability.Month) (*engine.Engine, error) {
	var (
		snapshot profitability.Snapshot
		cfg      settings.FinancialConfig
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cfg, err = s.config.GetFinancialConfig(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		snapshot, err = s.loadSnapshot(gCtx, month)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	facts, err := engine.NewFacts(cfg, snapshot)
	if err != nil {
		return nil, err
	}
	if facts.SkippedRows > 0 {
		slog.Warn("Timesheet rows reference unknown employees or projects", "month", month.String(), "skipped", facts.SkippedRows)
	}

	return engine.NewEngine(facts), nil
}

func (s *DashboardServiceImpl) loadSnapshot(ctx context.Context, month profitability.Month) (profitability.Snapshot, error) {
	key := factsCacheKey(month)

	var cached profitability.Snapshot
	err := s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, cache.ErrMiss):
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	default:
		metrics.CacheRequests.WithLabelValues("error").Inc()
		slog.Warn("Facts cache read failed", "key", key, "error", err)
	}

	snapshot, err := s.readSnapshot(ctx, month)
	if err != nil {
		return profitability.Snapshot{}, err
	}

	if err := s.cache.Set(ctx, key, snapshot, s.cacheTTL); err != nil {
		slog.Warn("Facts cache write failed", "key", key, "error", err)
	}
	return snapshot, nil
}

// RefreshFacts implements profitability.DashboardService.
func (s *DashboardServiceImpl) RefreshFacts(ctx context.Context, month profitability.Month) error {
	snapshot, err := s.readSnapshot(ctx, month)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, factsCacheKey(month), snapshot, s.cacheTTL); err != nil {
		return fmt.Errorf("failed to cache facts for %s: %w", month, err)
	}
	return nil
}

// readSnapshot issues one query per table, all in parallel.
func (s *DashboardServiceImpl) readSnapshot(ctx context.Context, month profitability.Month) (profitability.Snapshot, error) {
	snapshot := profitability.Snapshot{Month: month}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.repo.ListDepartments(gCtx)
		snapshot.Departments = rows
		return upstream(err)
	})
	g.Go(func() error {
		rows, err := s.repo.ListEmployees(gCtx)
		snapshot.Employees = rows
		return upstream(err)
	})
	g.Go(func() error {
		rows, err := s.repo.ListClients(gCtx)
		snapshot.Clients = rows
		return upstream(err)
	})
	g.Go(func() error {
		rows, err := s.repo.ListProjects(gCtx)
		snapshot.Projects = rows
		return upstream(err)
	})
	g.Go(func() error {
		rows, err := s.repo.ListTimesheetsByMonth(gCtx, month)
		snapshot.Timesheets = rows
		return upstream(err)
	})
	g.Go(func() error {
		rows, err := s.repo.ListRevenueByMonth(gCtx, month)
		snapshot.Revenue = rows
		return upstream(err)
	})

	if err := g.Wait(); err != nil {
		return profitability.Snapshot{}, err
	}
	return snapshot, nil
}

func upstream(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", profitability.ErrUpstreamData, err)
}
