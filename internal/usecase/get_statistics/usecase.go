package get_statistics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
)

// UseCase use case для получения статистики бизнеса за период
type UseCase struct {
	businessRepo   BusinessRepository
	statisticsRepo StatisticsRepository
	timeProvider   TimeProvider
	loc            *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	statisticsRepo StatisticsRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:   businessRepo,
		statisticsRepo: statisticsRepo,
		timeProvider:   &RealTimeProvider{},
		loc:            loc,
		logger:         logger,
	}
}

// Execute выполняет use case получения статистики
// Период: от нижней границы интервала до сегодняшнего дня включительно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStatistics: business=%d, user=%d, interval=%s", req.BusinessID, req.UserID, req.Interval)

	// 1. Валидация входных данных
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if !req.Interval.IsValid() {
		uc.logger.Warn("GetStatistics: unknown interval %q", req.Interval)
		return nil, fmt.Errorf("%w: interval must be one of week, month, three_months", ErrInvalidInput)
	}

	// 2. Проверяем, что запрашивает владелец
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetStatistics: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetStatistics: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}

	if !business.IsOwner(req.UserID) {
		uc.logger.Warn("GetStatistics: user=%d is not owner of business id=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 3. Вычисляем границы периода
	now := uc.timeProvider.Now().In(uc.loc)
	from := req.Interval.LowerBound(now)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	granularity := req.Interval.Granularity()

	// 4. Агрегаты по периодам
	aggregated, err := uc.statisticsRepo.AggregateByPeriod(ctx, req.BusinessID, from, to, granularity)
	if err != nil {
		uc.logger.Error("GetStatistics: failed to aggregate orders: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate orders: %w", ErrInternal, err)
	}

	// 5. Популярность услуг
	popularity, err := uc.statisticsRepo.ServicePopularity(ctx, req.BusinessID, from, to)
	if err != nil {
		uc.logger.Error("GetStatistics: failed to get service popularity: %v", err)
		return nil, fmt.Errorf("%w: failed to get service popularity: %w", ErrInternal, err)
	}

	// 6. Заполняем пропуски и считаем итоги
	stats := &domain.Statistics{
		BusinessID:  req.BusinessID,
		Interval:    req.Interval,
		Granularity: granularity,
		From:        from,
		To:          to,
		Buckets:     fillBuckets(aggregated, from, to, granularity),
	}
	summarize(stats, popularity)

	uc.logger.Info("GetStatistics: business=%d, %d buckets, %d orders, revenue=%s",
		req.BusinessID, len(stats.Buckets), stats.TotalOrders, stats.Revenue.StringFixed(2))

	return &Response{Statistics: stats}, nil
}
