package rbac

import "errors"

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidRBACOverrides = errors.New("invalid rbac overrides")
	ErrOverrideLoad         = errors.New("failed to load rbac overrides")
	ErrPrincipalMissing     = errors.New("no authenticated principal in context")
)
