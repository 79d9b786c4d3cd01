package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/handler/http/response"
)

type SettingsHandler interface {
	GetConfig(w http.ResponseWriter, r *http.Request)
	GetRBACConfig(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

// GetConfig handles GET /config
func (h *settingsHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRBACConfig handles GET /config/rbac
func (h *settingsHandlerImpl) GetRBACConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetRBACConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateConfig handles PUT /config
func (h *settingsHandlerImpl) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateConfigRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.settingsService.UpdateConfig(r.Context(), req)
	if err != nil {
		slog.Error("UpdateConfig service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Configuration updated", result)
}
