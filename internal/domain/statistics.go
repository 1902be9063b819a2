package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatisticsInterval период, за который строится статистика
type StatisticsInterval string

const (
	IntervalWeek        StatisticsInterval = "week"         // последние 7 дней, по дням
	IntervalMonth       StatisticsInterval = "month"        // текущий месяц, по дням
	IntervalThreeMonths StatisticsInterval = "three_months" // последние 3 календарных месяца, по месяцам
)

// Granularity шаг группировки статистики
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// IsValid проверяет, что интервал известен
func (i StatisticsInterval) IsValid() bool {
	switch i {
	case IntervalWeek, IntervalMonth, IntervalThreeMonths:
		return true
	default:
		return false
	}
}

// LowerBound возвращает первую дату периода (включительно)
func (i StatisticsInterval) LowerBound(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch i {
	case IntervalMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case IntervalThreeMonths:
		return time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
	default:
		return today.AddDate(0, 0, -6)
	}
}

// Granularity возвращает шаг группировки для интервала
func (i StatisticsInterval) Granularity() Granularity {
	if i == IntervalThreeMonths {
		return GranularityMonth
	}
	return GranularityDay
}

// StatisticsBucket агрегаты за один день/месяц
type StatisticsBucket struct {
	Period          time.Time
	CompletedOrders int
	OtherOrders     int
	Revenue         decimal.Decimal
}

// ServicePopularity количество заказов услуги за период
type ServicePopularity struct {
	ServiceID   int64
	ServiceName string
	OrdersCount int
}

// Statistics статистика бизнеса за период
type Statistics struct {
	BusinessID      int64
	Interval        StatisticsInterval
	Granularity     Granularity
	From            time.Time
	To              time.Time
	Buckets         []StatisticsBucket
	TotalOrders     int
	CompletedOrders int
	OtherOrders     int
	Revenue         decimal.Decimal
	AveragePrice    decimal.Decimal
	MostPopular     *ServicePopularity
	LeastPopular    *ServicePopularity
}
