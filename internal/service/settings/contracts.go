package settings

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	Create(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error)
	GetByBusinessAndPosition(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error)
	GetWithHierarchy(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.BookingSettings, error)
	Update(ctx context.Context, id int64, settings *domain.BookingSettings) (*domain.BookingSettings, error)
	DeleteByBusinessAndPosition(ctx context.Context, businessID int64, positionID *int64) error
}

// BusinessRepository интерфейс репозитория бизнесов (для проверки прав)
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// PositionRepository интерфейс репозитория должностей
type PositionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
