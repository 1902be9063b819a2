package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

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

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// GetBlockingBySpecialistAndDate получает заказы специалиста на дату, занимающие его время
	GetBlockingBySpecialistAndDate(ctx context.Context, specialistID int64, date time.Time) ([]*domain.Order, error)
}

// SettingsResolver возвращает действующие настройки бронирования с учетом иерархии
type SettingsResolver interface {
	Resolve(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error)
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
