package complete_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "заказ не найден"
	msgForbidden      = "доступ запрещен"
	msgCannotComplete = "заказ не может быть завершен"
	msgTooEarly       = "заказ еще не начался"
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

// Handle PATCH /api/v1/orders/{orderId}/complete
// Доступно специалисту заказа и владельцу бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/complete - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Complete(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/complete - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id}/complete - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrInvalidTransition):
			h.logger.Warn("PATCH /orders/{id}/complete - Invalid transition: order_id=%d", orderID)
			handlers.RespondConflict(w, msgCannotComplete)

		case errors.Is(err, orders.ErrTooEarlyToComplete):
			handlers.RespondBadRequest(w, msgTooEarly)

		default:
			h.logger.Error("PATCH /orders/{id}/complete - Failed to complete order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/complete - Order completed successfully: order_id=%d, user_id=%d", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
