package settings

import "context"

type SettingsService interface {
	// GetFinancialConfig loads and validates the constants used by aggregation
	GetFinancialConfig(ctx context.Context) (FinancialConfig, error)

	GetConfig(ctx context.Context) (*ConfigResponse, error)
	GetRBACConfig(ctx context.Context) (*RBACConfigResponse, error)

	// UpdateConfig persists the provided keys and reloads the RBAC evaluator
	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (*ConfigResponse, error)
}
