package set_position_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

const (
	msgInvalidPositionID  = "некорректный ID должности"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректные рабочие часы"
	msgNotFound           = "должность не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/positions/{positionId}/working-hours
// Расписание должности сужает расписание бизнеса, пустой список снимает ограничение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	positionID, err := handlers.PathInt64(r, "positionId")
	if err != nil {
		h.logger.Warn("PUT /positions/{id}/working-hours - Invalid position ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPositionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /positions/{id}/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /positions/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.SetPositionHours(r.Context(), positionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPositionNotFound):
			h.logger.Warn("PUT /positions/{id}/working-hours - Position not found: position_id=%d", positionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /positions/{id}/working-hours - Access denied: position_id=%d, user_id=%d",
				positionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /positions/{id}/working-hours - Invalid hours: position_id=%d, error=%v", positionID, err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		default:
			h.logger.Error("PUT /positions/{id}/working-hours - Failed to set hours: position_id=%d, error=%v",
				positionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /positions/{id}/working-hours - Hours replaced: position_id=%d, days=%d",
		positionID, len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
