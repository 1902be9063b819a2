package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	getAvailability "github.com/m04kA/SMC-BeautyService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string        `json:"date"`
	SpecialistID    int64         `json:"specialistId"`
	WorkingInterval IntervalDTO   `json:"workingInterval"`
	FreeIntervals   []IntervalDTO `json:"freeIntervals"`
}

// IntervalDTO свободный интервал [start, end)
type IntervalDTO struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

func toIntervalDTO(i domain.Interval) IntervalDTO {
	return IntervalDTO{
		Start:           i.Start.String(),
		End:             i.End.String(),
		DurationMinutes: i.DurationMinutes(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	free := make([]IntervalDTO, len(resp.FreeIntervals))
	for i, interval := range resp.FreeIntervals {
		free[i] = toIntervalDTO(interval)
	}

	return &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		SpecialistID:    resp.SpecialistID,
		WorkingInterval: toIntervalDTO(resp.WorkingInterval),
		FreeIntervals:   free,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(specialistID int64, dateStr string, serviceID *int64) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		SpecialistID: specialistID,
		Date:         date,
		ServiceID:    serviceID,
	}, nil
}
