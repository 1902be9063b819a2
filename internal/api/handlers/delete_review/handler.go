package delete_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews"
)

const (
	msgInvalidReviewID = "некорректный ID отзыва"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "отзыв не найден"
	msgForbidden       = "удалить отзыв может только его автор"
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

// Handle DELETE /api/v1/reviews/{reviewId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.PathInt64(r, "reviewId")
	if err != nil {
		h.logger.Warn("DELETE /reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reviews/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), reviewID, userID); err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("DELETE /reviews/{id} - Access denied: review_id=%d, user_id=%d", reviewID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /reviews/{id} - Failed to delete review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reviews/{id} - Review deleted: review_id=%d, user_id=%d", reviewID, userID)
	w.WriteHeader(http.StatusNoContent)
}
