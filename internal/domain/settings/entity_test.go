package settings

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFinancialConfig(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr error
	}{
		{"valid", map[string]string{KeyOverheadCostPerYear: "180000", KeyStandardMonthlyHours: "160"}, nil},
		{"missing overhead", map[string]string{KeyStandardMonthlyHours: "160"}, ErrConfigurationMissing},
		{"missing hours", map[string]string{KeyOverheadCostPerYear: "180000"}, ErrConfigurationMissing},
		{"zero hours", map[string]string{KeyOverheadCostPerYear: "0", KeyStandardMonthlyHours: "0"}, ErrConfigurationInvalid},
		{"negative overhead", map[string]string{KeyOverheadCostPerYear: "-1", KeyStandardMonthlyHours: "160"}, ErrConfigurationInvalid},
		{"not a number", map[string]string{KeyOverheadCostPerYear: "lots", KeyStandardMonthlyHours: "160"}, ErrConfigurationInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFinancialConfig(tt.values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.OverheadCostPerYear.Equal(decimal.NewFromInt(180000)))
			assert.True(t, cfg.StandardMonthlyHours.Equal(decimal.NewFromInt(160)))
		})
	}
}

func TestUpdateConfigRequest_Validate(t *testing.T) {
	hours := decimal.NewFromInt(160)
	zero := decimal.Zero
	valid := `{"hr":["employees"]}`
	invalid := `{"hr":["payroll"]}`
	empty := ""

	assert.Error(t, (&UpdateConfigRequest{}).Validate())
	assert.NoError(t, (&UpdateConfigRequest{StandardMonthlyHours: &hours}).Validate())
	assert.Error(t, (&UpdateConfigRequest{StandardMonthlyHours: &zero}).Validate())
	assert.NoError(t, (&UpdateConfigRequest{RBACOverrides: &valid}).Validate())
	assert.NoError(t, (&UpdateConfigRequest{RBACOverrides: &empty}).Validate())
	assert.Error(t, (&UpdateConfigRequest{RBACOverrides: &invalid}).Validate())
}

func TestUpdateConfigRequest_Values(t *testing.T) {
	hours := decimal.RequireFromString("162.5")
	overrides := `{"hr":["employees"]}`
	req := UpdateConfigRequest{StandardMonthlyHours: &hours, RBACOverrides: &overrides}

	assert.Equal(t, map[string]string{
		KeyStandardMonthlyHours: "162.5",
		KeyRBACOverrides:        overrides,
	}, req.Values())
}
