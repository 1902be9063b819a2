package domain

import (
	"sort"

	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// Interval полуоткрытый интервал времени суток [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid возвращает true, если Start строго раньше End
func (i Interval) IsValid() bool {
	return i.Start.Minutes() >= 0 && i.End.Minutes() >= 0 && i.Start.IsBefore(i.End)
}

// DurationMinutes длительность интервала в минутах
func (i Interval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// Overlaps возвращает true, если интервалы пересекаются
// Граничащие интервалы ([10:00,11:00) и [11:00,12:00)) не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains возвращает true, если other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !other.End.IsAfter(i.End)
}

// Intersect возвращает пересечение интервалов
func Intersect(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start.IsAfter(start) {
		start = b.Start
	}
	end := a.End
	if b.End.IsBefore(end) {
		end = b.End
	}

	result := Interval{Start: start, End: end}
	if !result.IsValid() {
		return Interval{}, false
	}
	return result, true
}

// FreeIntervals вычитает занятые интервалы из рабочего
// Занятые интервалы могут пересекаться между собой и выходить за рабочий интервал
// Результат отсортирован по началу и не содержит пустых интервалов
func FreeIntervals(working Interval, busy []Interval) []Interval {
	if !working.IsValid() {
		return []Interval{}
	}

	sorted := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if b.IsValid() && b.Overlaps(working) {
			sorted = append(sorted, b)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})

	free := make([]Interval, 0, len(sorted)+1)
	cursor := working.Start

	for _, b := range sorted {
		if b.Start.IsAfter(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.IsAfter(cursor) {
			cursor = b.End
		}
		if !cursor.IsBefore(working.End) {
			return free
		}
	}

	if cursor.IsBefore(working.End) {
		free = append(free, Interval{Start: cursor, End: working.End})
	}

	return free
}
