package get_statistics

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	getStatistics "github.com/m04kA/SMC-BeautyService/internal/usecase/get_statistics"
)

// StatisticsResponse HTTP response model
type StatisticsResponse struct {
	BusinessID      int64              `json:"businessId"`
	Interval        string             `json:"interval"`
	Granularity     string             `json:"granularity"`
	From            string             `json:"from"`
	To              string             `json:"to"`
	TotalOrders     int                `json:"totalOrders"`
	CompletedOrders int                `json:"completedOrders"`
	OtherOrders     int                `json:"otherOrders"`
	Revenue         decimal.Decimal    `json:"revenue"`
	AveragePrice    decimal.Decimal    `json:"averagePrice"`
	MostPopular     *ServicePopularity `json:"mostPopularService,omitempty"`
	LeastPopular    *ServicePopularity `json:"leastPopularService,omitempty"`
	Buckets         []StatisticsBucket `json:"buckets"`
}

// StatisticsBucket агрегаты за один период
type StatisticsBucket struct {
	Period          string          `json:"period"`
	CompletedOrders int             `json:"completedOrders"`
	OtherOrders     int             `json:"otherOrders"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// ServicePopularity услуга и количество ее заказов
type ServicePopularity struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	OrdersCount int    `json:"ordersCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStatistics.Response) *StatisticsResponse {
	stats := resp.Statistics

	buckets := make([]StatisticsBucket, len(stats.Buckets))
	for i, b := range stats.Buckets {
		buckets[i] = StatisticsBucket{
			Period:          formatPeriod(b, stats.Granularity),
			CompletedOrders: b.CompletedOrders,
			OtherOrders:     b.OtherOrders,
			Revenue:         b.Revenue,
		}
	}

	return &StatisticsResponse{
		BusinessID:      stats.BusinessID,
		Interval:        string(stats.Interval),
		Granularity:     string(stats.Granularity),
		From:            stats.From.Format(domain.DateFormat),
		To:              stats.To.Format(domain.DateFormat),
		TotalOrders:     stats.TotalOrders,
		CompletedOrders: stats.CompletedOrders,
		OtherOrders:     stats.OtherOrders,
		Revenue:         stats.Revenue,
		AveragePrice:    stats.AveragePrice,
		MostPopular:     toPopularity(stats.MostPopular),
		LeastPopular:    toPopularity(stats.LeastPopular),
		Buckets:         buckets,
	}
}

// formatPeriod месячные корзины отдаются как YYYY-MM
func formatPeriod(b domain.StatisticsBucket, granularity domain.Granularity) string {
	if granularity == domain.GranularityMonth {
		return b.Period.Format("2006-01")
	}
	return b.Period.Format(domain.DateFormat)
}

func toPopularity(p *domain.ServicePopularity) *ServicePopularity {
	if p == nil {
		return nil
	}
	return &ServicePopularity{
		ServiceID:   p.ServiceID,
		ServiceName: p.ServiceName,
		OrdersCount: p.OrdersCount,
	}
}
