package cancel_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректная причина отмены"
	msgNotFound           = "заказ не найден"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "заказ не может быть отменен"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/cancel
// Тело запроса опционально: {"reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/cancel - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CancelOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /orders/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Cancel(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/cancel - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id}/cancel - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrCannotCancel), errors.Is(err, orders.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{id}/cancel - Cannot cancel: order_id=%d", orderID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /orders/{id}/cancel - Failed to cancel order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/cancel - Order cancelled successfully: order_id=%d, user_id=%d", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
