package list_businesses

import (
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/businesses
// Query params: ownerId, limit, offset (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.QueryInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET /businesses - Invalid ownerId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	limit, err := handlers.QueryUint64(r, "limit")
	if err != nil {
		h.logger.Warn("GET /businesses - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	offset, err := handlers.QueryUint64(r, "offset")
	if err != nil {
		h.logger.Warn("GET /businesses - Invalid offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListBusinesses(r.Context(), &models.ListBusinessesRequest{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.logger.Error("GET /businesses - Failed to list businesses: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses - Found %d businesses", len(result.Businesses))
	handlers.RespondJSON(w, http.StatusOK, result)
}
