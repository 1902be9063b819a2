package get_statistics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyService/internal/domain"
	getStatistics "github.com/m04kA/SMC-BeautyService/internal/usecase/get_statistics"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidInterval   = "некорректный интервал, ожидается week, month или three_months"
	msgNotFound          = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	useCase GetStatisticsUseCase
	logger  Logger
}

func NewHandler(useCase GetStatisticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/statistics
// Query params: interval (week | month | three_months, по умолчанию week)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/statistics - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/statistics - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	interval := domain.IntervalWeek
	if v := r.URL.Query().Get("interval"); v != "" {
		interval = domain.StatisticsInterval(v)
	}
	if !interval.IsValid() {
		h.logger.Warn("GET /businesses/{id}/statistics - Invalid interval: %q", interval)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getStatistics.Request{
		BusinessID: businessID,
		UserID:     userID,
		Interval:   interval,
	})
	if err != nil {
		switch {
		case errors.Is(err, getStatistics.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/statistics - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getStatistics.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/statistics - Access denied: business_id=%d, user_id=%d", businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getStatistics.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /businesses/{id}/statistics - Failed to get statistics: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
