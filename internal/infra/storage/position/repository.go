package position

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий должностей и их расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория должностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает должность
func (r *Repository) Create(ctx context.Context, position *domain.Position) (*domain.Position, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("positions").
		Columns("business_id", "name", "description").
		Values(position.BusinessID, position.Name, position.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&position.ID, &position.CreatedAt, &position.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicatePosition
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return position, nil
}

// GetByID получает должность по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "description", "created_at", "updated_at").
		From("positions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var position domain.Position
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&position.ID,
		&position.BusinessID,
		&position.Name,
		&position.Description,
		&position.CreatedAt,
		&position.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPositionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan position: %w", ErrScanRow, err)
	}

	return &position, nil
}

// ListByBusiness получает должности бизнеса
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Position, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "description", "created_at", "updated_at").
		From("positions").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	positions := make([]*domain.Position, 0)
	for rows.Next() {
		var position domain.Position
		if err := rows.Scan(
			&position.ID,
			&position.BusinessID,
			&position.Name,
			&position.Description,
			&position.CreatedAt,
			&position.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		positions = append(positions, &position)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return positions, nil
}

// GetWorkingHours получает расписание должности
// Пустой результат означает, что должность работает по расписанию бизнеса
func (r *Repository) GetWorkingHours(ctx context.Context, positionID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("position_working_hours").
		Where(squirrel.Eq{"position_id": positionID}).
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

	schedule := make(domain.WeeklySchedule, 0)
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

// ReplaceWorkingHours заменяет расписание должности
// Пустое расписание возвращает должность к расписанию бизнеса
func (r *Repository) ReplaceWorkingHours(ctx context.Context, positionID int64, schedule domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("position_working_hours").
		Where(squirrel.Eq{"position_id": positionID}).
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

	insertBuilder := psqlbuilder.Insert("position_working_hours").
		Columns("position_id", "weekday", "open_time", "close_time")
	for _, h := range schedule {
		insertBuilder = insertBuilder.Values(positionID, int(h.Weekday), h.OpenTime, h.CloseTime)
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
