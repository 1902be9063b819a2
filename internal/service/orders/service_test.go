package orders

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
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

const (
	customerID       = int64(100)
	specialistUserID = int64(200)
	ownerID          = int64(300)
	strangerID       = int64(400)
)

type fakeOrderRepo struct {
	orders map[int64]*domain.Order
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	var result []*domain.Order
	for _, o := range r.orders {
		if filter.CustomerID != nil && o.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.SpecialistID != nil && o.SpecialistID != *filter.SpecialistID {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, update orderRepo.StatusUpdate) error {
	o, ok := r.orders[id]
	if !ok || o.Status != update.From {
		return orderRepo.ErrStatusConflict
	}
	o.Status = update.To
	o.CancelledBy = update.CancelledBy
	o.CancellationReason = update.CancellationReason
	return nil
}

type scheduledJob struct {
	kind  domain.JobKind
	runAt time.Time
}

type fakeJobRepo struct {
	scheduled []scheduledJob
	cancelled [][]domain.JobKind
}

func (r *fakeJobRepo) Schedule(_ context.Context, _ int64, kind domain.JobKind, runAt time.Time) error {
	r.scheduled = append(r.scheduled, scheduledJob{kind: kind, runAt: runAt})
	return nil
}

func (r *fakeJobRepo) CancelPending(_ context.Context, _ int64, kinds ...domain.JobKind) error {
	r.cancelled = append(r.cancelled, kinds)
	return nil
}

type fakeSpecialistRepo struct{}

func (fakeSpecialistRepo) GetByID(_ context.Context, id int64) (*domain.Specialist, error) {
	if id != 5 {
		return nil, specialistRepo.ErrSpecialistNotFound
	}
	return &domain.Specialist{ID: 5, BusinessID: 1, PositionID: 10, UserID: specialistUserID, Email: "olga@example.com"}, nil
}

type fakeBusinessRepo struct{}

func (fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1, OwnerID: ownerID}, nil
}

type fakeSettings struct {
	settings *domain.BookingSettings
}

func (f fakeSettings) Resolve(context.Context, int64, *int64) (*domain.BookingSettings, error) {
	return f.settings, nil
}

type fakeLinks struct{}

func (fakeLinks) Verify(token string, _ int64, action linktoken.Action) error {
	if token != string(action)+"-ok" {
		return linktoken.ErrInvalidToken
	}
	return nil
}

type fakeNotifier struct {
	calls []string
	err   error
}

func (n *fakeNotifier) record(call string) error {
	n.calls = append(n.calls, call)
	return n.err
}

func (n *fakeNotifier) OrderApproved(context.Context, *domain.Order) error { return n.record("approved") }

func (n *fakeNotifier) OrderDeclined(_ context.Context, _ *domain.Order, auto bool) error {
	if auto {
		return n.record("auto_declined")
	}
	return n.record("declined")
}

func (n *fakeNotifier) OrderCancelled(context.Context, *domain.Order, *domain.Specialist) error {
	return n.record("cancelled")
}

func (n *fakeNotifier) OrderReminder(context.Context, *domain.Order, *domain.Specialist) error {
	return n.record("reminder")
}

func (n *fakeNotifier) OrderCompleted(context.Context, *domain.Order) error { return n.record("completed") }

type fakePublisher struct {
	events []eventbus.OrderEvent
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event eventbus.OrderEvent) error {
	p.events = append(p.events, event)
	return errors.New("broker down")
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) ObserveTransition(status string) {
	m.transitions = append(m.transitions, status)
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	svc       *Service
	orders    *fakeOrderRepo
	jobs      *fakeJobRepo
	notifier  *fakeNotifier
	publisher *fakePublisher
	metrics   *fakeMetrics
}

// Сейчас 2026-05-04 09:00 UTC, заказ на 2026-05-04 12:00, 60 минут
var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func newFixture(status domain.OrderStatus) *fixture {
	f := &fixture{
		orders: &fakeOrderRepo{orders: map[int64]*domain.Order{
			1: {
				ID:              1,
				BusinessID:      1,
				SpecialistID:    5,
				ServiceID:       3,
				CustomerID:      customerID,
				OrderDate:       time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
				StartTime:       "12:00",
				DurationMinutes: 60,
				Status:          status,
				Price:           decimal.NewFromInt(1500),
			},
		}},
		jobs:      &fakeJobRepo{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}

	settings := domain.DefaultBookingSettings(1)
	f.svc = NewService(f.orders, f.jobs, fakeSpecialistRepo{}, fakeBusinessRepo{}, fakeSettings{settings: settings},
		fakeLinks{}, f.notifier, f.publisher, f.metrics, fakeTx{}, time.UTC, logger.NewNop())
	f.svc.timeProvider = fixedTime{now: testNow}
	return f
}

func TestApprove(t *testing.T) {
	f := newFixture(domain.StatusActive)

	resp, err := f.svc.Approve(context.Background(), 1, "approve-ok")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	assert.Equal(t, [][]domain.JobKind{{domain.JobDeclineTimeout}}, f.jobs.cancelled)
	require.Len(t, f.jobs.scheduled, 2)
	assert.Equal(t, domain.JobReminder, f.jobs.scheduled[0].kind)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), f.jobs.scheduled[0].runAt)
	assert.Equal(t, domain.JobAutoComplete, f.jobs.scheduled[1].kind)
	assert.Equal(t, time.Date(2026, 5, 4, 13, 0, 0, 0, time.UTC), f.jobs.scheduled[1].runAt)

	assert.Equal(t, []string{"approved"}, f.notifier.calls)
	assert.Equal(t, []string{"approved"}, f.metrics.transitions)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "active", f.publisher.events[0].PrevStatus)
}

func TestApprove_ReminderInThePastIsSkipped(t *testing.T) {
	f := newFixture(domain.StatusActive)
	f.svc.timeProvider = fixedTime{now: time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC)}

	_, err := f.svc.Approve(context.Background(), 1, "approve-ok")
	require.NoError(t, err)
	require.Len(t, f.jobs.scheduled, 1)
	assert.Equal(t, domain.JobAutoComplete, f.jobs.scheduled[0].kind)
}

func TestApprove_Errors(t *testing.T) {
	f := newFixture(domain.StatusActive)
	_, err := f.svc.Approve(context.Background(), 1, "decline-ok")
	assert.ErrorIs(t, err, ErrInvalidToken)

	f = newFixture(domain.StatusCancelled)
	_, err = f.svc.Approve(context.Background(), 1, "approve-ok")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.notifier.calls)

	_, err = f.svc.Approve(context.Background(), 2, "approve-ok")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDecline(t *testing.T) {
	f := newFixture(domain.StatusActive)

	resp, err := f.svc.Decline(context.Background(), 1, "decline-ok")
	require.NoError(t, err)
	assert.Equal(t, "declined", resp.Status)
	assert.Equal(t, []string{"declined"}, f.notifier.calls)
	assert.Equal(t, [][]domain.JobKind{nil}, f.jobs.cancelled)

	_, err = f.svc.Decline(context.Background(), 1, "decline-ok")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_ByCustomer(t *testing.T) {
	f := newFixture(domain.StatusApproved)
	reason := "  changed plans  "

	resp, err := f.svc.Cancel(context.Background(), 1, &models.CancelOrderRequest{UserID: customerID, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, "customer", *resp.CancelledBy)
	assert.Equal(t, "changed plans", *resp.CancellationReason)
	assert.Equal(t, []string{"cancelled"}, f.notifier.calls)
}

func TestCancel_ByOwnerActsAsSpecialist(t *testing.T) {
	f := newFixture(domain.StatusActive)

	resp, err := f.svc.Cancel(context.Background(), 1, &models.CancelOrderRequest{UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, "specialist", *resp.CancelledBy)
}

func TestCancel_Refused(t *testing.T) {
	f := newFixture(domain.StatusCompleted)
	_, err := f.svc.Cancel(context.Background(), 1, &models.CancelOrderRequest{UserID: customerID})
	assert.ErrorIs(t, err, ErrCannotCancel)

	f = newFixture(domain.StatusActive)
	_, err = f.svc.Cancel(context.Background(), 1, &models.CancelOrderRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusActive, f.orders.orders[1].Status)
}

func TestComplete(t *testing.T) {
	f := newFixture(domain.StatusApproved)

	_, err := f.svc.Complete(context.Background(), 1, specialistUserID)
	assert.ErrorIs(t, err, ErrTooEarlyToComplete)

	f.svc.timeProvider = fixedTime{now: time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)}
	resp, err := f.svc.Complete(context.Background(), 1, specialistUserID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	f = newFixture(domain.StatusActive)
	f.svc.timeProvider = fixedTime{now: time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)}
	_, err = f.svc.Complete(context.Background(), 1, specialistUserID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestHandleDeclineTimeout(t *testing.T) {
	f := newFixture(domain.StatusActive)

	require.NoError(t, f.svc.HandleDeclineTimeout(context.Background(), 1))
	assert.Equal(t, domain.StatusDeclined, f.orders.orders[1].Status)
	assert.Equal(t, domain.ActorSystem, *f.orders.orders[1].CancelledBy)
	assert.Equal(t, []string{"auto_declined"}, f.notifier.calls)

	f = newFixture(domain.StatusApproved)
	require.NoError(t, f.svc.HandleDeclineTimeout(context.Background(), 1))
	assert.Equal(t, domain.StatusApproved, f.orders.orders[1].Status)
	assert.Empty(t, f.notifier.calls)
}

func TestHandleReminder(t *testing.T) {
	f := newFixture(domain.StatusApproved)
	require.NoError(t, f.svc.HandleReminder(context.Background(), 1))
	assert.Equal(t, []string{"reminder"}, f.notifier.calls)

	f.notifier.err = errors.New("smtp down")
	assert.ErrorIs(t, f.svc.HandleReminder(context.Background(), 1), ErrInternal)

	f = newFixture(domain.StatusCancelled)
	require.NoError(t, f.svc.HandleReminder(context.Background(), 1))
	assert.Empty(t, f.notifier.calls)
}

func TestHandleAutoComplete(t *testing.T) {
	f := newFixture(domain.StatusApproved)
	require.NoError(t, f.svc.HandleAutoComplete(context.Background(), 1))
	assert.Equal(t, domain.StatusCompleted, f.orders.orders[1].Status)
	assert.Equal(t, []string{"completed"}, f.notifier.calls)

	f = newFixture(domain.StatusCancelled)
	require.NoError(t, f.svc.HandleAutoComplete(context.Background(), 1))
	assert.Empty(t, f.notifier.calls)
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(domain.StatusActive)

	for _, userID := range []int64{customerID, specialistUserID, ownerID} {
		_, err := f.svc.GetByID(context.Background(), 1, userID)
		assert.NoError(t, err)
	}

	_, err := f.svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), 9, customerID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetSpecialistOrders_Access(t *testing.T) {
	f := newFixture(domain.StatusActive)

	resp, err := f.svc.GetSpecialistOrders(context.Background(), &models.GetSpecialistOrdersRequest{SpecialistID: 5, UserID: specialistUserID})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)

	_, err = f.svc.GetSpecialistOrders(context.Background(), &models.GetSpecialistOrdersRequest{SpecialistID: 5, UserID: customerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	bad := domain.OrderStatus("unknown")
	_, err = f.svc.GetCustomerOrders(context.Background(), &models.GetCustomerOrdersRequest{UserID: customerID, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
