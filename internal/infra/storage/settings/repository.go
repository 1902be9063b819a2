package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"id",
	"business_id",
	"position_id",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"approval_timeout_minutes",
	"reminder_before_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает настройки бронирования
func (r *Repository) Create(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"business_id",
			"position_id",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"approval_timeout_minutes",
			"reminder_before_minutes",
		).
		Values(
			settings.BusinessID,
			settings.PositionID,
			settings.AdvanceBookingDays,
			settings.MinBookingNoticeMinutes,
			settings.ApprovalTimeoutMinutes,
			settings.ReminderBeforeMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return settings, nil
}

// GetByBusinessAndPosition получает настройки ровно для указанного уровня
// positionID == nil означает настройки всего бизнеса
func (r *Repository) GetByBusinessAndPosition(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(settingsColumns...).
		From("booking_settings").
		Where(squirrel.Eq{"business_id": businessID})

	// Фильтрация по position_id (NULL или конкретное значение)
	if positionID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"position_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"position_id": *positionID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndPosition - build select query: %w", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndPosition - scan settings: %w", ErrScanRow, err)
	}

	return settings, nil
}

// GetWithHierarchy получает настройки с учетом иерархии приоритетов:
// 1. Настройки должности (businessID, positionID)
// 2. Настройки всего бизнеса (businessID, NULL)
//
// Если настройки не найдены ни на одном уровне, возвращает ErrSettingsNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error) {
	if positionID != nil {
		settings, err := r.GetByBusinessAndPosition(ctx, businessID, positionID)
		if err == nil {
			return settings, nil
		}
		if !errors.Is(err, ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (position): %w", ErrExecQuery, err)
		}
	}

	settings, err := r.GetByBusinessAndPosition(ctx, businessID, nil)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (business): %w", ErrExecQuery, err)
	}

	return nil, ErrSettingsNotFound
}

// ListByBusiness получает все настройки бизнеса, общие первыми
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("booking_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("position_id ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingSettings, 0)
	for rows.Next() {
		settings, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		result = append(result, settings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет значения настроек
func (r *Repository) Update(ctx context.Context, id int64, settings *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_settings").
		Set("advance_booking_days", settings.AdvanceBookingDays).
		Set("min_booking_notice_minutes", settings.MinBookingNoticeMinutes).
		Set("approval_timeout_minutes", settings.ApprovalTimeoutMinutes).
		Set("reminder_before_minutes", settings.ReminderBeforeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.CreatedAt, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	settings.ID = id
	return settings, nil
}

// DeleteByBusinessAndPosition удаляет настройки уровня
func (r *Repository) DeleteByBusinessAndPosition(ctx context.Context, businessID int64, positionID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("booking_settings").
		Where(squirrel.Eq{"business_id": businessID})

	if positionID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"position_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"position_id": *positionID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBusinessAndPosition - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByBusinessAndPosition - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBusinessAndPosition - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.BookingSettings, error) {
	var settings domain.BookingSettings
	err := row.Scan(
		&settings.ID,
		&settings.BusinessID,
		&settings.PositionID,
		&settings.AdvanceBookingDays,
		&settings.MinBookingNoticeMinutes,
		&settings.ApprovalTimeoutMinutes,
		&settings.ReminderBeforeMinutes,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
