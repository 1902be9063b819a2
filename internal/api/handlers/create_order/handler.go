package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	createOrder "github.com/m04kA/SMC-BeautyService/internal/usecase/create_order"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты заказа, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidData        = "некорректные данные заказа"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgSpecialistNotFound = "специалист не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotProvided = "специалист не оказывает эту услугу"
	msgBusinessClosed     = "специалист не работает в выбранную дату"
	msgInvalidOrderDate   = "некорректная дата заказа"
	msgDateTooFar         = "дата заказа слишком далеко в будущем"
	msgInvalidTimeSlot    = "время заказа выходит за рабочие часы"
	msgTooLateToBook      = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrSlotNotAvailable):
			h.logger.Warn("POST /orders - Slot not available: user_id=%d, specialist_id=%d", userID, req.SpecialistID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createOrder.ErrSpecialistNotFound):
			h.logger.Warn("POST /orders - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, createOrder.ErrServiceNotFound):
			h.logger.Warn("POST /orders - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createOrder.ErrServiceNotProvided):
			h.logger.Warn("POST /orders - Service not provided: specialist_id=%d, service_id=%d", req.SpecialistID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createOrder.ErrBusinessClosed):
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createOrder.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidOrderDate)

		case errors.Is(err, createOrder.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createOrder.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createOrder.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, specialist_id=%d, error=%v",
				userID, req.SpecialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /orders - Order created successfully: order_id=%d, user_id=%d, specialist_id=%d",
		result.ID, userID, req.SpecialistID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
