package get_customer_orders

import (
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус заказа"
	msgForbidden     = "можно просматривать только свои заказы"
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

// Handle GET /api/v1/users/{userId}/orders
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/orders - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if callerID != userID {
		h.logger.Warn("GET /users/{userId}/orders - Access denied: user_id=%d, caller_id=%d", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetCustomerOrdersRequest{UserID: userID}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.OrderStatus(v)
		if !domain.IsValidOrderStatus(status) {
			h.logger.Warn("GET /users/{userId}/orders - Invalid status: %q", v)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		serviceReq.Status = &status
	}

	result, err := h.service.GetCustomerOrders(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /users/{userId}/orders - Failed to get orders: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/orders - Orders retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}
