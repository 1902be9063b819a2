package get_specialist_orders

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus       = "некорректный статус заказа"
	msgNotFound            = "специалист не найден"
	msgForbidden           = "доступ запрещен"
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

// Handle GET /api/v1/specialists/{specialistId}/orders
// Query params: date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathInt64(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/orders - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /specialists/{id}/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.GetSpecialistOrdersRequest{
		SpecialistID: specialistID,
		UserID:       userID,
	}

	query := r.URL.Query()
	if v := query.Get("date"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /specialists/{id}/orders - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.Date = &date
	}
	if v := query.Get("status"); v != "" {
		status := domain.OrderStatus(v)
		if !domain.IsValidOrderStatus(status) {
			h.logger.Warn("GET /specialists/{id}/orders - Invalid status: %q", v)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		serviceReq.Status = &status
	}

	result, err := h.service.GetSpecialistOrders(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id}/orders - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /specialists/{id}/orders - Access denied: specialist_id=%d, user_id=%d",
				specialistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /specialists/{id}/orders - Failed to get orders: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/orders - Orders retrieved successfully: specialist_id=%d, count=%d",
		specialistID, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}
