package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Reloader is the part of the RBAC evaluator the settings service needs.
type Reloader interface {
	Reload(ctx context.Context) error
}

type SettingsServiceImpl struct {
	settings.SettingsRepository
	evaluator Reloader
}

func NewSettingsService(repo settings.SettingsRepository, evaluator Reloader) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		evaluator:          evaluator,
	}
}

// GetFinancialConfig implements settings.SettingsService.
func (s *SettingsServiceImpl) GetFinancialConfig(ctx context.Context) (settings.FinancialConfig, error) {
	values, err := s.SettingsRepository.GetAll(ctx)
	if err != nil {
		return settings.FinancialConfig{}, fmt.Errorf("failed to load financial config: %w", err)
	}
	return settings.ParseFinancialConfig(values)
}

// GetConfig implements settings.SettingsService.
func (s *SettingsServiceImpl) GetConfig(ctx context.Context) (*settings.ConfigResponse, error) {
	values, err := s.SettingsRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial config: %w", err)
	}
	return toConfigResponse(values), nil
}

// GetRBACConfig implements settings.SettingsService.
func (s *SettingsServiceImpl) GetRBACConfig(ctx context.Context) (*settings.RBACConfigResponse, error) {
	raw, err := s.SettingsRepository.GetRBACOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rbac overrides: %w", err)
	}
	return &settings.RBACConfigResponse{RBACOverrides: raw}, nil
}

// UpdateConfig implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateConfig(ctx context.Context, req settings.UpdateConfigRequest) (*settings.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	values := req.Values()
	if err := s.SettingsRepository.Upsert(ctx, values); err != nil {
		return nil, fmt.Errorf("failed to update financial config: %w", err)
	}
	slog.Info("Financial config updated", "keys", len(values))

	if _, ok := values[settings.KeyRBACOverrides]; ok {
		// The write is committed; a client hanging up must not abort the reload.
		if err := s.evaluator.Reload(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("RBAC evaluator reload after config update failed", "error", err)
		}
	}

	return s.GetConfig(ctx)
}

func toConfigResponse(values map[string]string) *settings.ConfigResponse {
	return &settings.ConfigResponse{
		OverheadCostPerYear:  parseFloat(values[settings.KeyOverheadCostPerYear]),
		StandardMonthlyHours: parseFloat(values[settings.KeyStandardMonthlyHours]),
		RBACOverrides:        values[settings.KeyRBACOverrides],
	}
}

func parseFloat(s string) *float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
