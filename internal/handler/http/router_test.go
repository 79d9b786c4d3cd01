package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/config"
	"github.com/profitpulse/profitpulse-api/internal/domain/auth"
	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/domain/user"
	"github.com/profitpulse/profitpulse-api/internal/pkg/jwt"
	rbacService "github.com/profitpulse/profitpulse-api/internal/service/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAuthService struct {
	jwt jwt.Service
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := f.jwt.GenerateAccessToken(rbac.Principal{
		UserID: "0190a1b2-0000-7000-8000-000000000001",
		Email:  req.Email,
		Role:   rbac.RoleFinance,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{AccessToken: token, AccessTokenExpiresIn: exp - time.Now().Unix(), Role: string(rbac.RoleFinance)}, nil
}

func (f *fakeAuthService) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	return user.UserResponse{ID: userID, Email: "finance@example.com", Role: string(rbac.RoleFinance)}, nil
}

type fakeDashboardService struct {
	lastMonth profitability.Month
	err       error
}

func (f *fakeDashboardService) GetExecutive(ctx context.Context, m profitability.Month) (*profitability.ExecutiveDashboardResponse, error) {
	f.lastMonth = m
	if f.err != nil {
		return nil, f.err
	}
	return &profitability.ExecutiveDashboardResponse{Month: m.String()}, nil
}

func (f *fakeDashboardService) GetProjects(ctx context.Context, m profitability.Month) (*profitability.ProjectDashboardResponse, error) {
	f.lastMonth = m
	if f.err != nil {
		return nil, f.err
	}
	return &profitability.ProjectDashboardResponse{Month: m.String()}, nil
}

func (f *fakeDashboardService) GetEmployees(ctx context.Context, m profitability.Month) (*profitability.EmployeeDashboardResponse, error) {
	f.lastMonth = m
	if f.err != nil {
		return nil, f.err
	}
	return &profitability.EmployeeDashboardResponse{Month: m.String()}, nil
}

func (f *fakeDashboardService) GetDepartments(ctx context.Context, m profitability.Month) (*profitability.DepartmentDashboardResponse, error) {
	f.lastMonth = m
	if f.err != nil {
		return nil, f.err
	}
	return &profitability.DepartmentDashboardResponse{Month: m.String()}, nil
}

func (f *fakeDashboardService) GetClients(ctx context.Context, m profitability.Month) (*profitability.ClientDashboardResponse, error) {
	f.lastMonth = m
	if f.err != nil {
		return nil, f.err
	}
	return &profitability.ClientDashboardResponse{Month: m.String()}, nil
}

func (f *fakeDashboardService) RefreshFacts(ctx context.Context, m profitability.Month) error {
	return nil
}

type fakeSettingsService struct {
	overrides string
	updated   *settings.UpdateConfigRequest
}

func (f *fakeSettingsService) GetFinancialConfig(ctx context.Context) (settings.FinancialConfig, error) {
	return settings.FinancialConfig{}, nil
}

func (f *fakeSettingsService) GetConfig(ctx context.Context) (*settings.ConfigResponse, error) {
	return &settings.ConfigResponse{RBACOverrides: f.overrides}, nil
}

func (f *fakeSettingsService) GetRBACConfig(ctx context.Context) (*settings.RBACConfigResponse, error) {
	return &settings.RBACConfigResponse{RBACOverrides: f.overrides}, nil
}

func (f *fakeSettingsService) UpdateConfig(ctx context.Context, req settings.UpdateConfigRequest) (*settings.ConfigResponse, error) {
	f.updated = &req
	return &settings.ConfigResponse{}, nil
}

type staticOverrides string

func (s staticOverrides) GetRBACOverrides(ctx context.Context) (string, error) {
	return string(s), nil
}

type testServer struct {
	router    http.Handler
	jwt       jwt.Service
	dashboard *fakeDashboardService
	settings  *fakeSettingsService
}

func newTestServer(t *testing.T, overrides string) *testServer {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Env:                "test",
			LogLevel:           "error",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			RateLimitPerMinute: 1000,
		},
	}
	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	dashboard := &fakeDashboardService{}
	settingsSvc := &fakeSettingsService{overrides: overrides}

	router := NewRouter(cfg, jwtService, rbacService.NewEvaluator(staticOverrides(overrides)), Handlers{
		Auth:      NewAuthHandler(jwtService, &fakeAuthService{jwt: jwtService}),
		Dashboard: NewDashboardHandler(dashboard),
		Settings:  NewSettingsHandler(settingsSvc),
	})

	return &testServer{router: router, jwt: jwtService, dashboard: dashboard, settings: settingsSvc}
}

func (s *testServer) token(t *testing.T, role rbac.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(rbac.Principal{
		UserID: "0190a1b2-0000-7000-8000-00000000000a",
		Email:  fmt.Sprintf("%s@example.com", role),
		Role:   role,
	})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, "")

	t.Run("success", func(t *testing.T) {
		payload, _ := json.Marshal(auth.LoginRequest{Email: "finance@example.com", Password: "password123"})
		rec := srv.do(http.MethodPost, "/api/v1/auth/login", "", payload)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.Equal(t, "finance", data["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		payload, _ := json.Marshal(auth.LoginRequest{Email: "finance@example.com", Password: "nope"})
		rec := srv.do(http.MethodPost, "/api/v1/auth/login", "", payload)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		payload, _ := json.Marshal(auth.LoginRequest{Email: "not-an-email"})
		rec := srv.do(http.MethodPost, "/api/v1/auth/login", "", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/api/v1/auth/login", "", []byte(`{"email":`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMeAndLogout(t *testing.T) {
	srv := newTestServer(t, "")
	token := srv.token(t, rbac.RoleFinance)

	rec := srv.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboard_RequiresAuthentication(t *testing.T) {
	srv := newTestServer(t, "")

	rec := srv.do(http.MethodGet, "/api/v1/dashboard/executive", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/dashboard/executive", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboard_ScopeChecks(t *testing.T) {
	srv := newTestServer(t, "")

	tests := []struct {
		role rbac.Role
		path string
		want int
	}{
		{rbac.RoleAdmin, "/api/v1/dashboard/executive", http.StatusOK},
		{rbac.RoleFinance, "/api/v1/dashboard/executive", http.StatusOK},
		{rbac.RoleFinance, "/api/v1/dashboard/client", http.StatusOK},
		{rbac.RoleDeliveryManager, "/api/v1/dashboard/project", http.StatusOK},
		{rbac.RoleDeliveryManager, "/api/v1/dashboard/executive", http.StatusForbidden},
		{rbac.RoleDepartmentHead, "/api/v1/dashboard/department", http.StatusOK},
		{rbac.RoleDepartmentHead, "/api/v1/dashboard/client", http.StatusForbidden},
		{rbac.RoleHR, "/api/v1/dashboard/project", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.path, func(t *testing.T) {
			rec := srv.do(http.MethodGet, tt.path+"?month=2024-03", srv.token(t, tt.role), nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestDashboard_OverridesApply(t *testing.T) {
	srv := newTestServer(t, `{"hr":["dashboard:project"]}`)

	rec := srv.do(http.MethodGet, "/api/v1/dashboard/project?month=2024-03", srv.token(t, rbac.RoleHR), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboard_MonthQuery(t *testing.T) {
	srv := newTestServer(t, "")
	token := srv.token(t, rbac.RoleFinance)

	t.Run("year-month", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/v1/dashboard/project?month=2024-03", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, profitability.NewMonth(2024, time.March), srv.dashboard.lastMonth)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "2024-03", data["month"])
	})

	t.Run("month and year", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/v1/dashboard/employee?month=7&year=2023", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, profitability.NewMonth(2023, time.July), srv.dashboard.lastMonth)
	})

	t.Run("defaults to current month", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/v1/dashboard/client", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, profitability.MonthOf(time.Now()), srv.dashboard.lastMonth)
	})

	for _, query := range []string{"month=2024-13", "month=march", "month=13&year=2024", "month=3&year=24"} {
		t.Run("invalid "+query, func(t *testing.T) {
			rec := srv.do(http.MethodGet, "/api/v1/dashboard/project?"+query, token, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestDashboard_ErrorMapping(t *testing.T) {
	srv := newTestServer(t, "")
	token := srv.token(t, rbac.RoleFinance)

	srv.dashboard.err = fmt.Errorf("wrapped: %w", settings.ErrConfigurationInvalid)
	rec := srv.do(http.MethodGet, "/api/v1/dashboard/executive?month=2024-03", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "CONFIGURATION_ERROR", errBody["code"])

	srv.dashboard.err = fmt.Errorf("wrapped: %w", profitability.ErrUpstreamData)
	rec = srv.do(http.MethodGet, "/api/v1/dashboard/executive?month=2024-03", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody = decodeBody(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "UPSTREAM_DATA_ERROR", errBody["code"])
}

func TestConfigRoutes(t *testing.T) {
	srv := newTestServer(t, `{"hr":["employees"]}`)

	t.Run("rbac config readable by any role", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/v1/config/rbac", srv.token(t, rbac.RoleHR), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, `{"hr":["employees"]}`, data["rbac_overrides"])
	})

	t.Run("full config needs the config scope", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/api/v1/config", srv.token(t, rbac.RoleFinance), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = srv.do(http.MethodGet, "/api/v1/config", srv.token(t, rbac.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("update is admin only", func(t *testing.T) {
		payload := []byte(`{"standard_monthly_hours": 168}`)

		rec := srv.do(http.MethodPut, "/api/v1/config", srv.token(t, rbac.RoleFinance), payload)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Nil(t, srv.settings.updated)

		rec = srv.do(http.MethodPut, "/api/v1/config", srv.token(t, rbac.RoleAdmin), payload)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, srv.settings.updated)
		assert.Equal(t, "168", srv.settings.updated.StandardMonthlyHours.String())
	})

	t.Run("update rejects bad overrides", func(t *testing.T) {
		payload := []byte(`{"rbac_overrides": "{\"intern\":[\"all\"]}"}`)
		rec := srv.do(http.MethodPut, "/api/v1/config", srv.token(t, rbac.RoleAdmin), payload)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, "")
	rec := srv.do(http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
