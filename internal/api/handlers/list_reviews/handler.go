package list_reviews

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса"
	msgNotFound          = "бизнес не найден"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/reviews
// Query params: limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/reviews - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	limit, err := handlers.QueryUint64(r, "limit")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/reviews - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	offset, err := handlers.QueryUint64(r, "offset")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/reviews - Invalid offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByBusiness(r.Context(), &models.ListReviewsRequest{
		BusinessID: businessID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		if errors.Is(err, reviews.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id}/reviews - Failed to list reviews: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
