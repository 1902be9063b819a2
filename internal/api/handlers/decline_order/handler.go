package decline_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingToken   = "отсутствует токен ссылки"
	msgInvalidToken   = "ссылка недействительна или устарела"
	msgNotFound       = "заказ не найден"
	msgAlreadyChanged = "заказ уже не ожидает подтверждения"
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

// Handle GET /api/v1/orders/{orderId}/decline?token={token}
// Ссылка из письма специалисту, авторизация по подписанному токену
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathInt64(r, "orderId")
	if err != nil {
		h.logger.Warn("GET /orders/{id}/decline - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		h.logger.Warn("GET /orders/{id}/decline - Missing token: order_id=%d", orderID)
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	result, err := h.service.Decline(r.Context(), orderID, token)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidToken):
			h.logger.Warn("GET /orders/{id}/decline - Invalid token: order_id=%d", orderID)
			handlers.RespondForbidden(w, msgInvalidToken)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id}/decline - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrInvalidTransition):
			h.logger.Warn("GET /orders/{id}/decline - Order is no longer active: order_id=%d", orderID)
			handlers.RespondConflict(w, msgAlreadyChanged)

		default:
			h.logger.Error("GET /orders/{id}/decline - Failed to decline order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders/{id}/decline - Order declined: order_id=%d", orderID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
