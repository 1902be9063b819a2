package create_order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// Понедельник, 09:00 UTC
var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeOrderRepo struct {
	existing []*domain.Order
	created  []*domain.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	copied := *order
	copied.ID = int64(len(r.created) + 1)
	copied.CreatedAt = testNow
	copied.UpdatedAt = testNow
	r.created = append(r.created, &copied)
	return &copied, nil
}

func (r *fakeOrderRepo) GetBlockingBySpecialistAndDate(context.Context, int64, time.Time) ([]*domain.Order, error) {
	return r.existing, nil
}

type scheduledJob struct {
	orderID int64
	kind    domain.JobKind
	runAt   time.Time
}

type fakeJobRepo struct {
	scheduled []scheduledJob
}

func (r *fakeJobRepo) Schedule(_ context.Context, orderID int64, kind domain.JobKind, runAt time.Time) error {
	r.scheduled = append(r.scheduled, scheduledJob{orderID: orderID, kind: kind, runAt: runAt})
	return nil
}

type fakeSpecialistRepo struct{}

func (fakeSpecialistRepo) GetByID(_ context.Context, id int64) (*domain.Specialist, error) {
	if id != 5 {
		return nil, specialistRepo.ErrSpecialistNotFound
	}
	return &domain.Specialist{ID: 5, BusinessID: 1, PositionID: 10, Email: "olga@example.com"}, nil
}

type fakeHoursRepo struct {
	schedule domain.WeeklySchedule
}

func (r fakeHoursRepo) GetWorkingHours(context.Context, int64) (domain.WeeklySchedule, error) {
	return r.schedule, nil
}

type fakeServiceRepo struct{}

func (fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 7:
		return &domain.Service{ID: 7, PositionID: 10, Name: "Стрижка", DurationMinutes: 60, Price: decimal.RequireFromString("1500.00")}, nil
	case 8:
		return &domain.Service{ID: 8, PositionID: 11, Name: "Маникюр", DurationMinutes: 90}, nil
	}
	return nil, serviceRepo.ErrServiceNotFound
}

type fakeSettings struct{}

func (fakeSettings) Resolve(_ context.Context, businessID int64, _ *int64) (*domain.BookingSettings, error) {
	return domain.DefaultBookingSettings(businessID), nil
}

type fakeNotifier struct {
	created []int64
	timeout time.Duration
	err     error
}

func (n *fakeNotifier) OrderCreated(_ context.Context, order *domain.Order, _ *domain.Specialist, approvalTimeout time.Duration) error {
	n.created = append(n.created, order.ID)
	n.timeout = approvalTimeout
	return n.err
}

type fakePublisher struct {
	events []eventbus.OrderEvent
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event eventbus.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) ObserveTransition(status string) {
	m.transitions = append(m.transitions, status)
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type testEnv struct {
	uc        *UseCase
	orders    *fakeOrderRepo
	jobs      *fakeJobRepo
	notifier  *fakeNotifier
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newTestEnv(existing ...*domain.Order) *testEnv {
	env := &testEnv{
		orders:    &fakeOrderRepo{existing: existing},
		jobs:      &fakeJobRepo{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	businessHours := domain.WeeklySchedule{{Weekday: time.Monday, OpenTime: "09:00", CloseTime: "18:00"}}

	env.uc = NewUseCase(
		env.orders,
		env.jobs,
		fakeSpecialistRepo{},
		fakeHoursRepo{schedule: businessHours},
		fakeHoursRepo{},
		fakeServiceRepo{},
		fakeSettings{},
		env.notifier,
		env.publisher,
		env.metrics,
		&fakeTxManager{},
		time.UTC,
		logger.NewNop(),
	)
	env.uc.timeProvider = fixedTime{now: testNow}
	return env
}

func validRequest(start string) *Request {
	return &Request{
		CustomerID:    100,
		CustomerName:  "Анна",
		CustomerEmail: "anna@example.com",
		SpecialistID:  5,
		ServiceID:     7,
		Date:          testNow,
		StartTime:     types.TimeString(start),
	}
}

func TestExecute_CreatesActiveOrder(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest("12:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.True(t, decimal.RequireFromString("1500").Equal(resp.Price))

	require.Len(t, env.jobs.scheduled, 1)
	assert.Equal(t, domain.JobDeclineTimeout, env.jobs.scheduled[0].kind)
	assert.Equal(t, testNow.Add(2*time.Hour), env.jobs.scheduled[0].runAt)

	assert.Equal(t, []int64{1}, env.notifier.created)
	assert.Equal(t, 2*time.Hour, env.notifier.timeout)
	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, "active", env.publisher.events[0].Status)
	assert.Empty(t, env.publisher.events[0].PrevStatus)
	assert.Equal(t, []string{"active"}, env.metrics.transitions)
}

func TestExecute_StoresParsedEmail(t *testing.T) {
	env := newTestEnv()
	req := validRequest("12:00")
	req.CustomerEmail = " Anna <anna@example.com> "

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, env.orders.created, 1)
	assert.Equal(t, "anna@example.com", env.orders.created[0].CustomerEmail)
}

func TestExecute_DeclineTimeoutNotLaterThanStart(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), validRequest("10:30"))
	require.NoError(t, err)

	require.Len(t, env.jobs.scheduled, 1)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC), env.jobs.scheduled[0].runAt)
}

func TestExecute_NotificationFailureDoesNotFail(t *testing.T) {
	env := newTestEnv()
	env.notifier.err = errors.New("smtp down")

	_, err := env.uc.Execute(context.Background(), validRequest("12:00"))
	require.NoError(t, err)
	assert.Len(t, env.orders.created, 1)
}

func TestExecute_AdjacentOrdersDoNotConflict(t *testing.T) {
	env := newTestEnv(
		&domain.Order{ID: 1, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusApproved},
		&domain.Order{ID: 2, StartTime: "13:00", DurationMinutes: 30, Status: domain.StatusActive},
	)

	_, err := env.uc.Execute(context.Background(), validRequest("12:00"))
	require.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(req *Request)
		existing []*domain.Order
		wantErr  error
	}{
		{
			name:    "missing email",
			modify:  func(req *Request) { req.CustomerEmail = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "email without domain",
			modify:  func(req *Request) { req.CustomerEmail = "anna@" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "email with line break",
			modify:  func(req *Request) { req.CustomerEmail = "anna@example.com\r\nBcc: x@example.com" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad start time",
			modify:  func(req *Request) { req.StartTime = "25:00" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown specialist",
			modify:  func(req *Request) { req.SpecialistID = 6 },
			wantErr: ErrSpecialistNotFound,
		},
		{
			name:    "unknown service",
			modify:  func(req *Request) { req.ServiceID = 9 },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service of another position",
			modify:  func(req *Request) { req.ServiceID = 8 },
			wantErr: ErrServiceNotProvided,
		},
		{
			name:    "date in the past",
			modify:  func(req *Request) { req.Date = testNow.AddDate(0, 0, -7) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "closed weekday",
			modify:  func(req *Request) { req.Date = testNow.AddDate(0, 0, 1) },
			wantErr: ErrBusinessClosed,
		},
		{
			name:    "ends after closing",
			modify:  func(req *Request) { req.StartTime = "17:30" },
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "inside notice period",
			modify:  func(req *Request) { req.StartTime = "09:30" },
			wantErr: ErrTooLateToBook,
		},
		{
			name:     "overlaps existing order",
			existing: []*domain.Order{{ID: 1, StartTime: "11:30", DurationMinutes: 60, Status: domain.StatusActive}},
			wantErr:  ErrSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(tt.existing...)
			req := validRequest("12:00")
			if tt.modify != nil {
				tt.modify(req)
			}

			_, err := env.uc.Execute(context.Background(), req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, env.orders.created)
			assert.Empty(t, env.jobs.scheduled)
			assert.Empty(t, env.notifier.created)
		})
	}
}
