package job

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

// jobNamespace пространство имён для детерминированных ключей идемпотентности
var jobNamespace = uuid.MustParse("5b0f3c2e-8f53-4c57-9c7e-0b4b8f1f9a61")

var jobColumns = []string{
	"id",
	"idempotency_key",
	"order_id",
	"kind",
	"run_at",
	"status",
	"attempts",
	"last_error",
	"created_at",
	"updated_at",
}

// IdempotencyKey ключ задачи: одна задача каждого типа на заказ
func IdempotencyKey(orderID int64, kind domain.JobKind) string {
	return uuid.NewSHA1(jobNamespace, []byte(strconv.FormatInt(orderID, 10)+":"+string(kind))).String()
}

// Repository репозиторий отложенных задач по заказам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория задач
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Schedule ставит задачу в очередь
// Повторная постановка задачи того же типа для заказа игнорируется
func (r *Repository) Schedule(ctx context.Context, orderID int64, kind domain.JobKind, runAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("order_jobs").
		Columns("idempotency_key", "order_id", "kind", "run_at", "status").
		Values(IdempotencyKey(orderID, kind), orderID, kind, runAt.UTC(), domain.JobPending).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Schedule - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Schedule - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// CancelPending отменяет ожидающие задачи заказа
// Без kinds отменяются задачи всех типов
func (r *Repository) CancelPending(ctx context.Context, orderID int64, kinds ...domain.JobKind) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("order_jobs").
		Set("status", domain.JobCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_id": orderID, "status": string(domain.JobPending)})

	if len(kinds) > 0 {
		kindStrings := make([]string, len(kinds))
		for i, k := range kinds {
			kindStrings[i] = string(k)
		}
		updateBuilder = updateBuilder.Where(squirrel.Eq{"kind": kindStrings})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CancelPending - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CancelPending - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// ClaimDue забирает готовые к выполнению задачи
// Забранные задачи переносятся на now+lease и получают +1 попытку, поэтому
// упавший обработчик не теряет задачу, а параллельные обработчики не берут её повторно
func (r *Repository) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Подзапрос строится с плейсхолдерами "?", нумерация $N выполняется внешним запросом
	due := squirrel.Select("id").
		From("order_jobs").
		Where(squirrel.Eq{"status": string(domain.JobPending)}).
		Where(squirrel.LtOrEq{"run_at": now.UTC()}).
		OrderBy("run_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	dueSQL, dueArgs, err := due.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimDue - build due subquery: %w", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("order_jobs").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("run_at", now.Add(lease).UTC()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("id IN ("+dueSQL+")", dueArgs...)).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimDue - build update query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimDue - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.IdempotencyKey,
			&job.OrderID,
			&job.Kind,
			&job.RunAt,
			&job.Status,
			&job.Attempts,
			&job.LastError,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ClaimDue - scan row: %w", ErrScanRow, err)
		}
		jobs = append(jobs, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ClaimDue - rows error: %w", ErrScanRow, err)
	}

	return jobs, nil
}

// MarkDone помечает задачу выполненной
func (r *Repository) MarkDone(ctx context.Context, id int64) error {
	return r.setStatus(ctx, "MarkDone", id, domain.JobDone, nil)
}

// MarkFailed окончательно помечает задачу проваленной
func (r *Repository) MarkFailed(ctx context.Context, id int64, lastError string) error {
	return r.setStatus(ctx, "MarkFailed", id, domain.JobFailed, &lastError)
}

// RecordError сохраняет ошибку попытки и переносит задачу на retryAt
func (r *Repository) RecordError(ctx context.Context, id int64, lastError string, retryAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("order_jobs").
		Set("last_error", lastError).
		Set("run_at", retryAt.UTC()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordError - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordError - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) setStatus(ctx context.Context, op string, id int64, status domain.JobStatus, lastError *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("order_jobs").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if lastError != nil {
		updateBuilder = updateBuilder.Set("last_error", *lastError)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}
