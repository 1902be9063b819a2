package get_statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

const ownerID = int64(300)

var testNow = time.Date(2026, 3, 15, 14, 20, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBusinessRepo struct{}

func (fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1, OwnerID: ownerID}, nil
}

type fakeStatisticsRepo struct {
	buckets     []domain.StatisticsBucket
	popularity  []domain.ServicePopularity
	from, to    time.Time
	granularity domain.Granularity
	err         error
}

func (r *fakeStatisticsRepo) AggregateByPeriod(_ context.Context, _ int64, from, to time.Time, granularity domain.Granularity) ([]domain.StatisticsBucket, error) {
	r.from, r.to, r.granularity = from, to, granularity
	return r.buckets, r.err
}

func (r *fakeStatisticsRepo) ServicePopularity(context.Context, int64, time.Time, time.Time) ([]domain.ServicePopularity, error) {
	return r.popularity, nil
}

func newTestUseCase(repo *fakeStatisticsRepo) *UseCase {
	uc := NewUseCase(fakeBusinessRepo{}, repo, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute_WeekFillsGapsAndSums(t *testing.T) {
	repo := &fakeStatisticsRepo{
		buckets: []domain.StatisticsBucket{
			{Period: day(10), CompletedOrders: 2, OtherOrders: 1, Revenue: decimal.RequireFromString("3000")},
			{Period: day(15), CompletedOrders: 1, OtherOrders: 0, Revenue: decimal.RequireFromString("1000")},
		},
		popularity: []domain.ServicePopularity{
			{ServiceID: 3, ServiceName: "Стрижка", OrdersCount: 2},
			{ServiceID: 1, ServiceName: "Маникюр", OrdersCount: 1},
			{ServiceID: 2, ServiceName: "Педикюр", OrdersCount: 1},
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, UserID: ownerID, Interval: domain.IntervalWeek})
	require.NoError(t, err)
	stats := resp.Statistics

	assert.Equal(t, day(9), repo.from)
	assert.Equal(t, day(15), repo.to)
	assert.Equal(t, domain.GranularityDay, repo.granularity)

	require.Len(t, stats.Buckets, 7)
	assert.Equal(t, day(9), stats.Buckets[0].Period)
	assert.Zero(t, stats.Buckets[0].CompletedOrders)
	assert.True(t, stats.Buckets[0].Revenue.IsZero())
	assert.Equal(t, 2, stats.Buckets[1].CompletedOrders)
	assert.Equal(t, day(15), stats.Buckets[6].Period)

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 3, stats.CompletedOrders)
	assert.Equal(t, 1, stats.OtherOrders)
	assert.True(t, decimal.RequireFromString("4000").Equal(stats.Revenue))
	assert.True(t, decimal.RequireFromString("1333.33").Equal(stats.AveragePrice))

	require.NotNil(t, stats.MostPopular)
	assert.Equal(t, int64(3), stats.MostPopular.ServiceID)
	require.NotNil(t, stats.LeastPopular)
	assert.Equal(t, int64(1), stats.LeastPopular.ServiceID)
}

func TestExecute_ThreeMonthsByMonth(t *testing.T) {
	repo := &fakeStatisticsRepo{
		buckets: []domain.StatisticsBucket{
			{Period: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), CompletedOrders: 5, Revenue: decimal.NewFromInt(5000)},
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, UserID: ownerID, Interval: domain.IntervalThreeMonths})
	require.NoError(t, err)
	stats := resp.Statistics

	assert.Equal(t, domain.GranularityMonth, repo.granularity)
	require.Len(t, stats.Buckets, 3)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), stats.Buckets[0].Period)
	assert.Equal(t, 5, stats.Buckets[1].CompletedOrders)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), stats.Buckets[2].Period)
	assert.True(t, decimal.NewFromInt(1000).Equal(stats.AveragePrice))
}

func TestExecute_EmptyPeriod(t *testing.T) {
	uc := newTestUseCase(&fakeStatisticsRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, UserID: ownerID, Interval: domain.IntervalMonth})
	require.NoError(t, err)
	stats := resp.Statistics

	assert.Len(t, stats.Buckets, 15)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.AveragePrice.IsZero())
	assert.Nil(t, stats.MostPopular)
	assert.Nil(t, stats.LeastPopular)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		repoErr error
		wantErr error
	}{
		{"unknown interval", &Request{BusinessID: 1, UserID: ownerID, Interval: "year"}, nil, ErrInvalidInput},
		{"unknown business", &Request{BusinessID: 2, UserID: ownerID, Interval: domain.IntervalWeek}, nil, ErrBusinessNotFound},
		{"not owner", &Request{BusinessID: 1, UserID: 1, Interval: domain.IntervalWeek}, nil, ErrAccessDenied},
		{"repository failure", &Request{BusinessID: 1, UserID: ownerID, Interval: domain.IntervalWeek}, errors.New("boom"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeStatisticsRepo{err: tt.repoErr})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestPopularityExtremes_TiesPreferLowerID(t *testing.T) {
	most, least := popularityExtremes([]domain.ServicePopularity{
		{ServiceID: 5, OrdersCount: 3},
		{ServiceID: 2, OrdersCount: 3},
		{ServiceID: 9, OrdersCount: 1},
		{ServiceID: 4, OrdersCount: 1},
	})

	assert.Equal(t, int64(2), most.ServiceID)
	assert.Equal(t, int64(4), least.ServiceID)
}
