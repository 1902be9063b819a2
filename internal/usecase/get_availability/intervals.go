package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// clipByNotice сдвигает начало рабочего интервала на now + minNotice
// Граница считается по настенному времени в loc, время округляется вверх до минуты
// Возвращает false, если в этот день записаться уже нельзя
func clipByNotice(working domain.Interval, date, now time.Time, minNoticeMinutes int, loc *time.Location) (domain.Interval, bool) {
	earliest := now.In(loc).Add(time.Duration(minNoticeMinutes) * time.Minute)

	day := calendarDate(date)
	earliestDay := calendarDate(earliest)
	if earliestDay.Before(day) {
		return working, true
	}
	if earliestDay.After(day) {
		return domain.Interval{}, false
	}

	minutes := earliest.Hour()*60 + earliest.Minute()
	if earliest.Second() != 0 || earliest.Nanosecond() != 0 {
		minutes++
	}
	if minutes >= types.MinutesInDay {
		return domain.Interval{}, false
	}

	bound, err := types.FromMinutes(minutes)
	if err != nil {
		return domain.Interval{}, false
	}
	if !bound.IsAfter(working.Start) {
		return working, true
	}

	clipped := domain.Interval{Start: bound, End: working.End}
	return clipped, clipped.IsValid()
}

// calendarDate календарная дата t в её собственном часовом поясе
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dropShorterThan оставляет только интервалы, в которые помещается услуга
func dropShorterThan(intervals []domain.Interval, durationMinutes int) []domain.Interval {
	result := make([]domain.Interval, 0, len(intervals))
	for _, interval := range intervals {
		if interval.DurationMinutes() >= durationMinutes {
			result = append(result, interval)
		}
	}
	return result
}
