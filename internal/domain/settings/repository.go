package settings

import "context"

type SettingsRepository interface {
	// GetAll returns every stored key/value pair
	GetAll(ctx context.Context) (map[string]string, error)

	// GetRBACOverrides returns the stored override document, or "" when none is stored
	GetRBACOverrides(ctx context.Context) (string, error)

	// Upsert writes the given pairs in one transaction
	Upsert(ctx context.Context, values map[string]string) error
}
