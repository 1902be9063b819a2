package business

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

// GetWorkingHours получает недельное расписание бизнеса
// Дни без записи считаются выходными
func (r *Repository) GetWorkingHours(ctx context.Context, businessID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("business_working_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		var (
			hours   domain.WorkingHours
			weekday int
		)
		if err := rows.Scan(&weekday, &hours.OpenTime, &hours.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %w", ErrScanRow, err)
		}
		hours.Weekday = time.Weekday(weekday)
		schedule = append(schedule, hours)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return schedule, nil
}

// ReplaceWorkingHours полностью заменяет недельное расписание бизнеса
// Должен вызываться внутри транзакции
func (r *Repository) ReplaceWorkingHours(ctx context.Context, businessID int64, schedule domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_working_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %w", ErrExecQuery, err)
	}

	if len(schedule) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("business_working_hours").
		Columns("business_id", "weekday", "open_time", "close_time")
	for _, h := range schedule {
		insertBuilder = insertBuilder.Values(businessID, int(h.Weekday), h.OpenTime, h.CloseTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
