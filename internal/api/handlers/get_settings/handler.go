package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/service/settings"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidPositionID = "некорректный ID должности"
	msgNotFound          = "бизнес не найден"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/settings
// Query params: positionId (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	positionID, err := handlers.QueryInt64(r, "positionId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings - Invalid position ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPositionID)
		return
	}

	// Если настроек нет ни на одном уровне, сервис вернет значения по умолчанию
	result, err := h.service.GetWithHierarchy(r.Context(), businessID, positionID)
	if err != nil {
		if errors.Is(err, settings.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id}/settings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id}/settings - Failed to get settings: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/settings - Settings retrieved: business_id=%d, level=%s",
		businessID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
