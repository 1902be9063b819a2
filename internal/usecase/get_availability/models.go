package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// Request модель запроса свободного времени специалиста
type Request struct {
	SpecialistID int64
	Date         time.Time // Дата без времени
	ServiceID    *int64    // Если задана, отбрасываются интервалы короче услуги
}

// Response модель ответа со свободными интервалами
type Response struct {
	Date            time.Time
	SpecialistID    int64
	WorkingInterval domain.Interval   // Рабочий интервал специалиста в этот день
	FreeIntervals   []domain.Interval // Свободные интервалы, отсортированы по началу
}
