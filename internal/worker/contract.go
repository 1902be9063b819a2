package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// JobRepository интерфейс очереди отложенных задач
type JobRepository interface {
	ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*domain.Job, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, lastError string) error
	RecordError(ctx context.Context, id int64, lastError string, retryAt time.Time) error
}

// OrderJobHandler обработчики задач по заказам
type OrderJobHandler interface {
	HandleDeclineTimeout(ctx context.Context, orderID int64) error
	HandleReminder(ctx context.Context, orderID int64) error
	HandleAutoComplete(ctx context.Context, orderID int64) error
}

// Metrics интерфейс учёта обработанных задач
type Metrics interface {
	ObserveJob(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
