package create_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetBlockingBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.Order, error)
}

// JobRepository интерфейс репозитория отложенных задач
type JobRepository interface {
	Schedule(ctx context.Context, orderID int64, kind domain.JobKind, runAt time.Time) error
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetWorkingHours(ctx context.Context, businessID int64) (domain.WeeklySchedule, error)
}

// PositionRepository интерфейс репозитория должностей
type PositionRepository interface {
	GetWorkingHours(ctx context.Context, positionID int64) (domain.WeeklySchedule, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SettingsResolver возвращает действующие настройки бронирования с учетом иерархии
type SettingsResolver interface {
	Resolve(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error)
}

// Notifier интерфейс уведомлений о новом заказе
type Notifier interface {
	OrderCreated(ctx context.Context, order *domain.Order, specialist *domain.Specialist, approvalTimeout time.Duration) error
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
