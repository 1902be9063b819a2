package get_statistics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// StatisticsRepository интерфейс агрегатов по заказам
type StatisticsRepository interface {
	AggregateByPeriod(ctx context.Context, businessID int64, from, to time.Time, granularity domain.Granularity) ([]domain.StatisticsBucket, error)
	ServicePopularity(ctx context.Context, businessID int64, from, to time.Time) ([]domain.ServicePopularity, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
