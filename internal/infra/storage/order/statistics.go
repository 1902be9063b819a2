package order

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyService/pkg/psqlbuilder"
)

// AggregateByPeriod считает заказы и выручку бизнеса за [from, to], сгруппированные по дню или месяцу
// Периоды без заказов в результат не попадают
func (r *Repository) AggregateByPeriod(ctx context.Context, businessID int64, from, to time.Time, granularity domain.Granularity) ([]domain.StatisticsBucket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	unit := "day"
	if granularity == domain.GranularityMonth {
		unit = "month"
	}
	period := fmt.Sprintf("date_trunc('%s', order_date)::date", unit)

	completed := string(domain.StatusCompleted)
	query, args, err := psqlbuilder.Select(
		period+" AS period",
	).
		Column("COUNT(*) FILTER (WHERE status = ?)", completed).
		Column("COUNT(*) FILTER (WHERE status <> ?)", completed).
		Column("COALESCE(SUM(price) FILTER (WHERE status = ?), 0)", completed).
		From("orders").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"order_date": from}).
		Where(squirrel.LtOrEq{"order_date": to}).
		GroupBy("period").
		OrderBy("period ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByPeriod - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AggregateByPeriod - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	buckets := make([]domain.StatisticsBucket, 0)
	for rows.Next() {
		var bucket domain.StatisticsBucket
		if err := rows.Scan(&bucket.Period, &bucket.CompletedOrders, &bucket.OtherOrders, &bucket.Revenue); err != nil {
			return nil, fmt.Errorf("%w: AggregateByPeriod - scan row: %w", ErrScanRow, err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AggregateByPeriod - rows error: %w", ErrScanRow, err)
	}

	return buckets, nil
}

// ServicePopularity считает заказы бизнеса за [from, to] по услугам
// Результат отсортирован по убыванию количества, при равенстве по возрастанию ID услуги
func (r *Repository) ServicePopularity(ctx context.Context, businessID int64, from, to time.Time) ([]domain.ServicePopularity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("o.service_id", "s.name", "COUNT(*) AS orders_count").
		From("orders o").
		Join("services s ON s.id = o.service_id").
		Where(squirrel.Eq{"o.business_id": businessID}).
		Where(squirrel.GtOrEq{"o.order_date": from}).
		Where(squirrel.LtOrEq{"o.order_date": to}).
		GroupBy("o.service_id", "s.name").
		OrderBy("orders_count DESC", "o.service_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ServicePopularity - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ServicePopularity - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.ServicePopularity, 0)
	for rows.Next() {
		var item domain.ServicePopularity
		if err := rows.Scan(&item.ServiceID, &item.ServiceName, &item.OrdersCount); err != nil {
			return nil, fmt.Errorf("%w: ServicePopularity - scan row: %w", ErrScanRow, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ServicePopularity - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
