package rbac

import "context"

// OverrideSource yields the raw stored override document. An empty string means none is stored.
type OverrideSource interface {
	GetRBACOverrides(ctx context.Context) (string, error)
}

// Evaluator answers scope checks against the default matrix merged with stored overrides.
type Evaluator interface {
	// HasScope reports whether role holds scope. The first call loads overrides.
	HasScope(ctx context.Context, role Role, scope Scope) bool

	// Matrix returns a copy of the effective matrix
	Matrix(ctx context.Context) Matrix

	// EnsureLoaded loads overrides unless a load already happened
	EnsureLoaded(ctx context.Context)

	// Reload re-reads the override source, falling back to defaults on failure
	Reload(ctx context.Context) error
}
