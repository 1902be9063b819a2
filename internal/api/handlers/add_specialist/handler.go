package add_specialist

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
	msgInvalidData        = "некорректные данные специалиста"
	msgNotFound           = "должность не найдена"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "пользователь уже числится специалистом этой должности"
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

// Handle POST /api/v1/positions/{positionId}/specialists
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	positionID, err := handlers.PathInt64(r, "positionId")
	if err != nil {
		h.logger.Warn("POST /positions/{id}/specialists - Invalid position ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPositionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /positions/{id}/specialists - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /positions/{id}/specialists - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.AddSpecialist(r.Context(), positionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPositionNotFound):
			h.logger.Warn("POST /positions/{id}/specialists - Position not found: position_id=%d", positionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /positions/{id}/specialists - Access denied: position_id=%d, user_id=%d", positionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrSpecialistAlreadyExists):
			h.logger.Warn("POST /positions/{id}/specialists - Duplicate specialist: position_id=%d", positionID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /positions/{id}/specialists - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /positions/{id}/specialists - Failed to add specialist: position_id=%d, error=%v",
				positionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /positions/{id}/specialists - Specialist added: position_id=%d, specialist_id=%d", positionID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
