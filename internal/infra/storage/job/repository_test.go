package job

import (
	"context"
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

func TestIdempotencyKey_Deterministic(t *testing.T) {
	assert.Equal(t, IdempotencyKey(1, domain.JobReminder), IdempotencyKey(1, domain.JobReminder))
	assert.NotEqual(t, IdempotencyKey(1, domain.JobReminder), IdempotencyKey(1, domain.JobAutoComplete))
	assert.NotEqual(t, IdempotencyKey(1, domain.JobReminder), IdempotencyKey(2, domain.JobReminder))
}

func TestSchedule(t *testing.T) {
	repo, mock := newRepo(t)
	runAt := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_jobs (idempotency_key,order_id,kind,run_at,status) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (idempotency_key) DO NOTHING")).
		WithArgs(IdempotencyKey(9, domain.JobDeclineTimeout), int64(9), "decline_timeout", runAt, "pending").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Schedule(context.Background(), 9, domain.JobDeclineTimeout, runAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPending_ByKind(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE order_id = $2 AND status = $3 AND kind IN ($4)")).
		WithArgs("cancelled", int64(9), "pending", "decline_timeout").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CancelPending(context.Background(), 9, domain.JobDeclineTimeout))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimDue(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	lease := 5 * time.Minute

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE order_jobs SET attempts = attempts + 1, run_at = $1, updated_at = NOW() WHERE id IN (SELECT id FROM order_jobs WHERE status = $2 AND run_at <= $3 ORDER BY run_at ASC LIMIT 10 FOR UPDATE SKIP LOCKED) RETURNING id")).
		WithArgs(now.Add(lease), "pending", now).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow(int64(1), "key", int64(9), "reminder", now.Add(lease), "pending", 1, nil, now, now))

	jobs, err := repo.ClaimDue(context.Background(), now, 10, lease)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobReminder, jobs[0].Kind)
	assert.Equal(t, 1, jobs[0].Attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkDone_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE order_jobs SET status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkDone(context.Background(), 3), ErrJobNotFound)
}
