package list_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidPositionID = "некорректный ID должности"
	msgNotFound          = "бизнес или должность не найдены"
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

// Handle GET /api/v1/businesses/{businessId}/services?positionId={positionId}
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	positionID, err := handlers.QueryInt64(r, "positionId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services - Invalid position ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPositionID)
		return
	}

	result, err := h.service.ListServices(r.Context(), businessID, positionID)
	if err != nil {
		if errors.Is(err, catalog.ErrBusinessNotFound) || errors.Is(err, catalog.ErrPositionNotFound) {
			h.logger.Warn("GET /businesses/{id}/services - Not found: business_id=%d, position_id=%v", businessID, positionID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id}/services - Failed to list services: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
