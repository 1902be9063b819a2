package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"business_id",
	"specialist_id",
	"service_id",
	"customer_id",
	"customer_name",
	"customer_email",
	"order_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"price",
	"comment",
	"cancelled_by",
	"cancellation_reason",
	"status_changed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заказ
// Проверка доступности времени выполняется вызывающей стороной в той же транзакции
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"business_id",
			"specialist_id",
			"service_id",
			"customer_id",
			"customer_name",
			"customer_email",
			"order_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"price",
			"comment",
		).
		Values(
			order.BusinessID,
			order.SpecialistID,
			order.ServiceID,
			order.CustomerID,
			order.CustomerName,
			order.CustomerEmail,
			order.OrderDate,
			order.StartTime,
			order.DurationMinutes,
			order.Status,
			order.ServiceName,
			order.Price,
			order.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return order, nil
}

// GetByID получает заказ по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %w", ErrScanRow, err)
	}

	return order, nil
}

// List получает заказы по фильтру
// Сортировка: сначала ближайшие по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		OrderBy("order_date DESC", "start_time DESC")

	if filter.BusinessID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"business_id": *filter.BusinessID})
	}
	if filter.SpecialistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"order_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"order_date": *filter.DateTo})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetBlockingBySpecialistAndDate получает заказы специалиста на дату, занимающие его время
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные заказы на тот же день
// проверяли доступность последовательно
func (r *Repository) GetBlockingBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{
			"specialist_id": specialistID,
			"order_date":    date,
			"status":        statusStrings(domain.BlockingStatuses),
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingBySpecialistAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingBySpecialistAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// StatusUpdate изменение статуса заказа
type StatusUpdate struct {
	From               domain.OrderStatus
	To                 domain.OrderStatus
	CancelledBy        *domain.OrderActor
	CancellationReason *string
	ChangedAt          time.Time
}

// UpdateStatus переводит заказ в новый статус, если текущий статус равен update.From
// Если статус уже изменён, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, update StatusUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("orders").
		Set("status", update.To).
		Set("status_changed_at", update.ChangedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": update.From})

	if update.CancelledBy != nil {
		updateBuilder = updateBuilder.
			Set("cancelled_by", *update.CancelledBy).
			Set("cancellation_reason", update.CancellationReason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.BusinessID,
		&order.SpecialistID,
		&order.ServiceID,
		&order.CustomerID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.OrderDate,
		&order.StartTime,
		&order.DurationMinutes,
		&order.Status,
		&order.ServiceName,
		&order.Price,
		&order.Comment,
		&order.CancelledBy,
		&order.CancellationReason,
		&order.StatusChangedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// scanOrders сканирует результаты запроса в слайс заказов
func scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanOrders - scan row: %w", ErrScanRow, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOrders - rows error: %w", ErrScanRow, err)
	}

	return orders, nil
}
