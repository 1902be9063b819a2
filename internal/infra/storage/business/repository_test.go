package business

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_id, name")).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(businessColumns).
		AddRow(int64(1), int64(10), "Studio", nil, "Main st. 1", nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	business, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Studio", business.Name)
	assert.True(t, business.IsOwner(10))
	assert.Nil(t, business.Description)
}

func TestGetWorkingHours(t *testing.T) {
	repo, mock := newRepo(t)

	rows := sqlmock.NewRows([]string{"weekday", "open_time", "close_time"}).
		AddRow(1, "09:00:00", "18:00:00").
		AddRow(6, "10:00:00", "24:00:00")
	mock.ExpectQuery(regexp.QuoteMeta("FROM business_working_hours WHERE business_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	schedule, err := repo.GetWorkingHours(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, schedule, 2)

	saturday, ok := schedule.ForWeekday(time.Saturday)
	require.True(t, ok)
	assert.Equal(t, "24:00", saturday.CloseTime.String())
}

func TestReplaceWorkingHours(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM business_working_hours WHERE business_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO business_working_hours (business_id,weekday,open_time,close_time) VALUES ($1,$2,$3,$4)")).
		WithArgs(int64(3), 1, "09:00:00", "18:00:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReplaceWorkingHours(context.Background(), 3, domain.WeeklySchedule{
		{Weekday: time.Monday, OpenTime: "09:00", CloseTime: "18:00"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
