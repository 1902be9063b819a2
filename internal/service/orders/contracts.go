package orders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, update orderRepo.StatusUpdate) error
}

// JobRepository интерфейс репозитория отложенных задач
type JobRepository interface {
	Schedule(ctx context.Context, orderID int64, kind domain.JobKind, runAt time.Time) error
	CancelPending(ctx context.Context, orderID int64, kinds ...domain.JobKind) error
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// SettingsResolver возвращает действующие настройки бронирования
type SettingsResolver interface {
	Resolve(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error)
}

// LinkVerifier проверяет токены ссылок подтверждения/отклонения
type LinkVerifier interface {
	Verify(token string, orderID int64, action linktoken.Action) error
}

// Notifier интерфейс уведомлений о переходах заказа
type Notifier interface {
	OrderApproved(ctx context.Context, order *domain.Order) error
	OrderDeclined(ctx context.Context, order *domain.Order, auto bool) error
	OrderCancelled(ctx context.Context, order *domain.Order, specialist *domain.Specialist) error
	OrderReminder(ctx context.Context, order *domain.Order, specialist *domain.Specialist) error
	OrderCompleted(ctx context.Context, order *domain.Order) error
}

// EventPublisher интерфейс публикации событий заказа
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event eventbus.OrderEvent) error
}

// Metrics интерфейс учёта переходов
type Metrics interface {
	ObserveTransition(status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
