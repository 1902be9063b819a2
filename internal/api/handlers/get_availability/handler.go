package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-BeautyService/internal/usecase/get_availability"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSpecialistNotFound  = "специалист не найден"
	msgServiceNotFound     = "услуга не найдена у специалиста"
	msgDateInPast          = "дата в прошлом"
	msgDateTooFar          = "дата слишком далеко в будущем"
	msgBusinessClosed      = "специалист не работает в выбранную дату"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/availability
// Query params: date (required, YYYY-MM-DD), serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathInt64(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /specialists/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(specialistID, dateStr, serviceID)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id}/availability - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /specialists/{id}/availability - Service not found: specialist_id=%d, service_id=%v",
				specialistID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrBusinessClosed):
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)

		default:
			h.logger.Error("GET /specialists/{id}/availability - Failed to get availability: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /specialists/{id}/availability - Availability retrieved: specialist_id=%d, date=%s, intervals=%d",
		specialistID, response.Date, len(response.FreeIntervals))
	handlers.RespondJSON(w, http.StatusOK, response)
}
