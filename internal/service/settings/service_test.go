package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepository struct {
	values   map[string]string
	err      error
	onUpsert func()
}

func (f *fakeSettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out, nil
}

func (f *fakeSettingsRepository) GetRBACOverrides(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[settings.KeyRBACOverrides], nil
}

func (f *fakeSettingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if f.err != nil {
		return f.err
	}
	for k, v := range values {
		f.values[k] = v
	}
	if f.onUpsert != nil {
		f.onUpsert()
	}
	return nil
}

type fakeReloader struct {
	calls  int
	ctxErr error
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.calls++
	f.ctxErr = ctx.Err()
	return f.ctxErr
}

func TestGetFinancialConfig(t *testing.T) {
	repo := &fakeSettingsRepository{values: map[string]string{
		settings.KeyOverheadCostPerYear:  "180000",
		settings.KeyStandardMonthlyHours: "160",
	}}
	svc := NewSettingsService(repo, &fakeReloader{})

	cfg, err := svc.GetFinancialConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.StandardMonthlyHours.Equal(decimal.NewFromInt(160)))

	repo.values[settings.KeyStandardMonthlyHours] = "0"
	_, err = svc.GetFinancialConfig(context.Background())
	assert.ErrorIs(t, err, settings.ErrConfigurationInvalid)

	delete(repo.values, settings.KeyStandardMonthlyHours)
	_, err = svc.GetFinancialConfig(context.Background())
	assert.ErrorIs(t, err, settings.ErrConfigurationMissing)
}

func TestGetFinancialConfig_RepositoryError(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepository{err: errors.New("db down")}, &fakeReloader{})

	_, err := svc.GetFinancialConfig(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, settings.ErrConfigurationMissing)
}

func TestUpdateConfig(t *testing.T) {
	repo := &fakeSettingsRepository{values: map[string]string{
		settings.KeyOverheadCostPerYear:  "180000",
		settings.KeyStandardMonthlyHours: "160",
	}}
	reloader := &fakeReloader{}
	svc := NewSettingsService(repo, reloader)

	hours := decimal.RequireFromString("168")
	resp, err := svc.UpdateConfig(context.Background(), settings.UpdateConfigRequest{StandardMonthlyHours: &hours})
	require.NoError(t, err)
	require.NotNil(t, resp.StandardMonthlyHours)
	assert.Equal(t, 168.0, *resp.StandardMonthlyHours)
	assert.Equal(t, 180000.0, *resp.OverheadCostPerYear)
	assert.Equal(t, 0, reloader.calls)

	overrides := `{"hr":["dashboard:employee"]}`
	resp, err = svc.UpdateConfig(context.Background(), settings.UpdateConfigRequest{RBACOverrides: &overrides})
	require.NoError(t, err)
	assert.Equal(t, overrides, resp.RBACOverrides)
	assert.Equal(t, 1, reloader.calls)

	rbacResp, err := svc.GetRBACConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, overrides, rbacResp.RBACOverrides)
}

func TestUpdateConfig_RejectsInvalidOverrides(t *testing.T) {
	repo := &fakeSettingsRepository{values: map[string]string{}}
	reloader := &fakeReloader{}
	svc := NewSettingsService(repo, reloader)

	bad := `{"admin":["nonsense"]}`
	_, err := svc.UpdateConfig(context.Background(), settings.UpdateConfigRequest{RBACOverrides: &bad})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), settings.KeyRBACOverrides)
	assert.Empty(t, repo.values)
	assert.Equal(t, 0, reloader.calls)
}

func TestUpdateConfig_ReloadOutlivesRequestContext(t *testing.T) {
	repo := &fakeSettingsRepository{values: map[string]string{}}
	reloader := &fakeReloader{}
	svc := NewSettingsService(repo, reloader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	overrides := `{"finance":["revenue"]}`
	repo.onUpsert = cancel

	_, err := svc.UpdateConfig(ctx, settings.UpdateConfigRequest{RBACOverrides: &overrides})
	require.NoError(t, err)
	assert.Equal(t, overrides, repo.values[settings.KeyRBACOverrides])
	assert.Equal(t, 1, reloader.calls)
	assert.NoError(t, reloader.ctxErr)
}
