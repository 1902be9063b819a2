package create_service

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
	msgInvalidData        = "некорректные данные услуги"
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

// Handle POST /api/v1/positions/{positionId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	positionID, err := handlers.PathInt64(r, "positionId")
	if err != nil {
		h.logger.Warn("POST /positions/{id}/services - Invalid position ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPositionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /positions/{id}/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /positions/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateService(r.Context(), positionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPositionNotFound):
			h.logger.Warn("POST /positions/{id}/services - Position not found: position_id=%d", positionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /positions/{id}/services - Access denied: position_id=%d, user_id=%d", positionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /positions/{id}/services - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /positions/{id}/services - Failed to create service: position_id=%d, error=%v",
				positionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /positions/{id}/services - Service created: position_id=%d, service_id=%d", positionID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
