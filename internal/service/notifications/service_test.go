package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/mailer"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
	"github.com/m04kA/SMC-BeautyService/pkg/metrics"
)

type fakeMailer struct {
	sent []mailer.Message
	fail map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.fail[msg.To] {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeSigner struct{}

func (fakeSigner) Issue(orderID int64, action linktoken.Action) (string, error) {
	return string(action) + "-token", nil
}

func newTestService(m *fakeMailer) *Service {
	var nilMetrics *metrics.Metrics
	return NewService(m, fakeSigner{}, "https://beauty.example/", time.UTC, nilMetrics, logger.NewNop())
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:              15,
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		ServiceName:     "Haircut",
		OrderDate:       time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:30",
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(1500),
		Status:          domain.StatusActive,
	}
}

func TestOrderCreated_SendsLinksToSpecialist(t *testing.T) {
	m := &fakeMailer{}
	svc := newTestService(m)
	specialist := &domain.Specialist{Name: "Olga", Email: "olga@example.com"}

	require.NoError(t, svc.OrderCreated(context.Background(), testOrder(), specialist, 2*time.Hour))
	require.Len(t, m.sent, 2)

	assert.Equal(t, "anna@example.com", m.sent[0].To)
	assert.Contains(t, m.sent[0].Body, "04.05.2026 10:30")

	assert.Equal(t, "olga@example.com", m.sent[1].To)
	assert.Contains(t, m.sent[1].Body, "https://beauty.example/api/v1/orders/15/approve?token=approve-token")
	assert.Contains(t, m.sent[1].Body, "https://beauty.example/api/v1/orders/15/decline?token=decline-token")
	assert.Contains(t, m.sent[1].Body, "120 мин.")
}

func TestOrderCreated_PartialFailure(t *testing.T) {
	m := &fakeMailer{fail: map[string]bool{"olga@example.com": true}}
	svc := newTestService(m)

	err := svc.OrderCreated(context.Background(), testOrder(), &domain.Specialist{Email: "olga@example.com"}, time.Hour)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Len(t, m.sent, 1)
}

func TestOrderCancelled_NotifiesOtherSide(t *testing.T) {
	specialist := &domain.Specialist{Name: "Olga", Email: "olga@example.com"}

	t.Run("cancelled by customer", func(t *testing.T) {
		m := &fakeMailer{}
		order := testOrder()
		actor := domain.ActorCustomer
		order.CancelledBy = &actor

		require.NoError(t, newTestService(m).OrderCancelled(context.Background(), order, specialist))
		require.Len(t, m.sent, 1)
		assert.Equal(t, "olga@example.com", m.sent[0].To)
		assert.Contains(t, m.sent[0].Body, "клиентом")
	})

	t.Run("cancelled by specialist", func(t *testing.T) {
		m := &fakeMailer{}
		order := testOrder()
		actor := domain.ActorSpecialist
		order.CancelledBy = &actor

		require.NoError(t, newTestService(m).OrderCancelled(context.Background(), order, specialist))
		require.Len(t, m.sent, 1)
		assert.Equal(t, "anna@example.com", m.sent[0].To)
	})
}

func TestOrderDeclined_Auto(t *testing.T) {
	m := &fakeMailer{}
	require.NoError(t, newTestService(m).OrderDeclined(context.Background(), testOrder(), true))
	assert.Contains(t, m.sent[0].Body, "автоматически")
}
