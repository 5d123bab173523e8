package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Update implements SettingsHandler.
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Settings updated")
	response.SuccessWithMessage(w, "Settings saved", resp)
}
