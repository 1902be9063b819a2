package get_statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// periodKey ключ периода без учета часового пояса
func periodKey(t time.Time, granularity domain.Granularity) string {
	if granularity == domain.GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format(domain.DateFormat)
}

// nextPeriod возвращает начало следующего дня или месяца
func nextPeriod(t time.Time, granularity domain.Granularity) time.Time {
	if granularity == domain.GranularityMonth {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// fillBuckets возвращает по одному бакету на каждый период [from, to]
// Периоды без заказов заполняются нулями
func fillBuckets(aggregated []domain.StatisticsBucket, from, to time.Time, granularity domain.Granularity) []domain.StatisticsBucket {
	byPeriod := make(map[string]domain.StatisticsBucket, len(aggregated))
	for _, bucket := range aggregated {
		byPeriod[periodKey(bucket.Period, granularity)] = bucket
	}

	result := make([]domain.StatisticsBucket, 0)
	for period := from; !period.After(to); period = nextPeriod(period, granularity) {
		bucket, ok := byPeriod[periodKey(period, granularity)]
		if !ok {
			bucket = domain.StatisticsBucket{Revenue: decimal.Zero}
		}
		bucket.Period = period
		result = append(result, bucket)
	}
	return result
}

// summarize заполняет итоговые показатели по бакетам и популярности услуг
func summarize(stats *domain.Statistics, popularity []domain.ServicePopularity) {
	stats.Revenue = decimal.Zero
	stats.AveragePrice = decimal.Zero

	for _, bucket := range stats.Buckets {
		stats.CompletedOrders += bucket.CompletedOrders
		stats.OtherOrders += bucket.OtherOrders
		stats.Revenue = stats.Revenue.Add(bucket.Revenue)
	}
	stats.TotalOrders = stats.CompletedOrders + stats.OtherOrders

	if stats.CompletedOrders > 0 {
		stats.AveragePrice = stats.Revenue.Div(decimal.NewFromInt(int64(stats.CompletedOrders))).Round(2)
	}

	stats.MostPopular, stats.LeastPopular = popularityExtremes(popularity)
}

// popularityExtremes возвращает самую и наименее популярные услуги
// При равном количестве выигрывает услуга с меньшим ID
func popularityExtremes(popularity []domain.ServicePopularity) (most, least *domain.ServicePopularity) {
	for i := range popularity {
		item := popularity[i]
		if most == nil || item.OrdersCount > most.OrdersCount ||
			(item.OrdersCount == most.OrdersCount && item.ServiceID < most.ServiceID) {
			most = &item
		}
		if least == nil || item.OrdersCount < least.OrdersCount ||
			(item.OrdersCount == least.OrdersCount && item.ServiceID < least.ServiceID) {
			least = &item
		}
	}
	return most, least
}
