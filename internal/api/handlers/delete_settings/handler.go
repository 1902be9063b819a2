package delete_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/settings"
	"github.com/m04kA/SMC-BeautyService/internal/service/settings/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidPositionID = "некорректный ID должности"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "настройки не найдены"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/businesses/{businessId}/settings
// Query params: positionId (опционально, без него удаляются настройки уровня бизнеса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	positionID, err := handlers.QueryInt64(r, "positionId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/settings - Invalid position ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPositionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), businessID, &models.DeleteSettingsRequest{
		UserID:     userID,
		PositionID: positionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrSettingsNotFound), errors.Is(err, settings.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{id}/settings - Not found: business_id=%d, position_id=%v",
				businessID, positionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/settings - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{id}/settings - Failed to delete settings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/settings - Settings deleted: business_id=%d, position_id=%v",
		businessID, positionID)
	w.WriteHeader(http.StatusNoContent)
}
