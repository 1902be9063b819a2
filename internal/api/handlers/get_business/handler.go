package get_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgNotFound          = "бизнес не найден"
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

// Handle GET /api/v1/businesses/{businessId}
// Публичный endpoint, возвращает бизнес вместе с рабочими часами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.GetBusiness(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, catalog.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id} - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id} - Failed to get business: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
