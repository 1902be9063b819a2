package create_order

import (
	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// orderInterval возвращает интервал [start, start+duration)
func orderInterval(start types.TimeString, durationMinutes int) (domain.Interval, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.Interval{Start: start, End: end}, nil
}

// fitsFreeInterval проверяет, что requested целиком лежит в одном из свободных интервалов
func fitsFreeInterval(working domain.Interval, busy []domain.Interval, requested domain.Interval) bool {
	for _, free := range domain.FreeIntervals(working, busy) {
		if free.Contains(requested) {
			return true
		}
	}
	return false
}
