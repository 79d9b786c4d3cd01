package rbac

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const loadKey = "rbac_overrides"

// EvaluatorImpl layers stored overrides over the default matrix. A failed load leaves the
// defaults in place and still counts as loaded, so callers never block on a broken store.
// A load abandoned because its context ended changes nothing.
type EvaluatorImpl struct {
	source rbac.OverrideSource

	mu     sync.RWMutex
	matrix rbac.Matrix
	loaded bool

	group singleflight.Group
}

func NewEvaluator(source rbac.OverrideSource) rbac.Evaluator {
	return &EvaluatorImpl{
		source: source,
		matrix: rbac.DefaultMatrix(),
	}
}

func (e *EvaluatorImpl) HasScope(ctx context.Context, role rbac.Role, scope rbac.Scope) bool {
	if role == rbac.RoleAdmin {
		return true
	}
	e.EnsureLoaded(ctx)

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matrix.Allows(role, scope)
}

func (e *EvaluatorImpl) Matrix(ctx context.Context) rbac.Matrix {
	e.EnsureLoaded(ctx)

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matrix.Clone()
}

func (e *EvaluatorImpl) EnsureLoaded(ctx context.Context) {
	e.mu.RLock()
	loaded := e.loaded
	e.mu.RUnlock()
	if loaded {
		return
	}
	_ = e.Reload(ctx)
}

// Reload fetches and applies the stored overrides. Concurrent reloads share one fetch.
func (e *EvaluatorImpl) Reload(ctx context.Context) error {
	_, err, _ := e.group.Do(loadKey, func() (interface{}, error) {
		return nil, e.load(ctx)
	})
	return err
}

func (e *EvaluatorImpl) load(ctx context.Context) error {
	matrix, err := e.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		// Cancelled mid-fetch: keep the current matrix and retry on the next check.
		return err
	}
	if err != nil {
		slog.Warn("Failed to load RBAC overrides, using default role matrix", "error", err)
		metrics.RBACOverrideLoadFailures.Inc()
		matrix = rbac.DefaultMatrix()
	}

	e.mu.Lock()
	e.matrix = matrix
	e.loaded = true
	e.mu.Unlock()

	return err
}

func (e *EvaluatorImpl) fetch(ctx context.Context) (rbac.Matrix, error) {
	raw, err := e.source.GetRBACOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rbac.ErrOverrideLoad, err)
	}

	overrides, err := rbac.ParseOverrides(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rbac.ErrOverrideLoad, err)
	}

	return rbac.Merge(rbac.DefaultMatrix(), overrides), nil
}
