package specialist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var specialistColumns = []string{
	"id",
	"business_id",
	"position_id",
	"user_id",
	"name",
	"email",
	"created_at",
}

// Repository репозиторий специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет специалиста в должность
func (r *Repository) Create(ctx context.Context, specialist *domain.Specialist) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specialists").
		Columns("business_id", "position_id", "user_id", "name", "email").
		Values(specialist.BusinessID, specialist.PositionID, specialist.UserID, specialist.Name, specialist.Email).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&specialist.ID, &specialist.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateSpecialist
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return specialist, nil
}

// GetByID получает специалиста по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specialistColumns...).
		From("specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	specialist, err := scanSpecialist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specialist: %w", ErrScanRow, err)
	}

	return specialist, nil
}

// ListByBusiness получает специалистов бизнеса, опционально только одной должности
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, positionID *int64) ([]*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(specialistColumns...).
		From("specialists").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC")

	if positionID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"position_id": *positionID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	specialists := make([]*domain.Specialist, 0)
	for rows.Next() {
		specialist, err := scanSpecialist(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %w", ErrScanRow, err)
		}
		specialists = append(specialists, specialist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %w", ErrScanRow, err)
	}

	return specialists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpecialist(row rowScanner) (*domain.Specialist, error) {
	var specialist domain.Specialist
	err := row.Scan(
		&specialist.ID,
		&specialist.BusinessID,
		&specialist.PositionID,
		&specialist.UserID,
		&specialist.Name,
		&specialist.Email,
		&specialist.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &specialist, nil
}
