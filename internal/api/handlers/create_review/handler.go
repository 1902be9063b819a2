package create_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные отзыва"
	msgBusinessNotFound   = "бизнес не найден"
	msgOrderNotFound      = "заказ не найден"
	msgOrderNotCompleted  = "отзыв можно оставить только на завершенный заказ"
	msgAlreadyExists      = "отзыв на этот заказ уже оставлен"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/businesses/{businessId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/reviews - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, reviews.ErrOrderNotFound):
			h.logger.Warn("POST /businesses/{id}/reviews - Order not found: order_id=%d", req.OrderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/reviews - Access denied: order_id=%d, user_id=%d", req.OrderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrOrderNotCompleted):
			handlers.RespondBadRequest(w, msgOrderNotCompleted)

		case errors.Is(err, reviews.ErrReviewAlreadyExists):
			h.logger.Warn("POST /businesses/{id}/reviews - Duplicate review: order_id=%d", req.OrderID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/reviews - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /businesses/{id}/reviews - Failed to create review: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/reviews - Review created: review_id=%d, order_id=%d", result.ID, req.OrderID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
