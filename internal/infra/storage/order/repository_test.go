package order

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/ptr"
	"github.com/m04kA/SMC-BeautyService/pkg/txmanager"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db := dbmetrics.Wrap(sqlDB, nil)
	return NewRepository(db), db, mock
}

func orderRow(id int64, start string, duration int, status domain.OrderStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, int64(1), int64(2), int64(3), int64(4), "Anna", "anna@example.com",
		time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), start, duration, string(status),
		"Haircut", "1500.00", nil, nil, nil, nil, now, now,
	}
}

func TestGetBlockingBySpecialistAndDate_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_time ASC FOR UPDATE")).
		WithArgs(date, int64(2), "active", "approved").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(orderRow(10, "10:00:00", 60, domain.StatusActive)...).
			AddRow(orderRow(11, "12:30:00", 30, domain.StatusApproved)...))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	orders, err := repo.GetBlockingBySpecialistAndDate(ctx, 2, date)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, orders, 2)
	assert.Equal(t, "10:00", orders[0].StartTime.String())
	assert.True(t, decimal.RequireFromString("1500").Equal(orders[0].Price))
	assert.Equal(t, domain.StatusApproved, orders[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SerializationFailureIsRetried(t *testing.T) {
	repo, db, mock := newRepo(t)
	tm := txmanager.NewTransactionManager(db)
	errInternal := errors.New("internal error")
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))
	mock.ExpectCommit()

	calls := 0
	var created *domain.Order
	err := tm.DoSerializable(context.Background(), func(txCtx context.Context) error {
		calls++
		order, err := repo.Create(txCtx, &domain.Order{
			BusinessID:      1,
			SpecialistID:    2,
			ServiceID:       3,
			CustomerID:      4,
			CustomerName:    "Anna",
			CustomerEmail:   "anna@example.com",
			OrderDate:       time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
			StartTime:       "12:00",
			DurationMinutes: 60,
			Status:          domain.StatusActive,
			ServiceName:     "Haircut",
			Price:           decimal.RequireFromString("1500"),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create order: %w", errInternal, err)
		}
		created = order
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.NotNil(t, created)
	assert.Equal(t, int64(42), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_KeepsDriverErrorInChain(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Order{StartTime: "12:00", Status: domain.StatusActive})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBlockingBySpecialistAndDate_NoLockOutsideTransaction(t *testing.T) {
	repo, _, mock := newRepo(t)
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY start_time ASC$`).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	orders, err := repo.GetBlockingBySpecialistAndDate(context.Background(), 2, date)
	require.NoError(t, err)
	assert.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Conflict(t *testing.T) {
	repo, _, mock := newRepo(t)
	changedAt := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1, status_changed_at = $2, updated_at = NOW() WHERE id = $3 AND status = $4")).
		WithArgs("approved", changedAt, int64(5), "active").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, StatusUpdate{
		From:      domain.StatusActive,
		To:        domain.StatusApproved,
		ChangedAt: changedAt,
	})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestUpdateStatus_Cancel(t *testing.T) {
	repo, _, mock := newRepo(t)
	changedAt := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("cancelled_by = $4, cancellation_reason = $5 WHERE id = $6 AND status = $7")).
		WithArgs("cancelled", changedAt, "customer", "changed plans", int64(5), "approved").
		WillReturnResult(sqlmock.NewResult(0, 1))

	actor := domain.ActorCustomer
	err := repo.UpdateStatus(context.Background(), 5, StatusUpdate{
		From:               domain.StatusApproved,
		To:                 domain.StatusCancelled,
		CancelledBy:        &actor,
		CancellationReason: ptr.Ptr("changed plans"),
		ChangedAt:          changedAt,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServicePopularity(t *testing.T) {
	repo, _, mock := newRepo(t)
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY orders_count DESC, o.service_id ASC")).
		WithArgs(int64(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"service_id", "name", "orders_count"}).
			AddRow(int64(3), "Haircut", 5).
			AddRow(int64(1), "Manicure", 2))

	result, err := repo.ServicePopularity(context.Background(), 1, from, to)
	require.NoError(t, err)
	assert.Equal(t, []domain.ServicePopularity{
		{ServiceID: 3, ServiceName: "Haircut", OrdersCount: 5},
		{ServiceID: 1, ServiceName: "Manicure", OrdersCount: 2},
	}, result)
}
