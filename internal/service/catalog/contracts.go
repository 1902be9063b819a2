package catalog

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	List(ctx context.Context, ownerID *int64, limit, offset uint64) ([]*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) (*domain.Business, error)
	GetWorkingHours(ctx context.Context, businessID int64) (domain.WeeklySchedule, error)
	ReplaceWorkingHours(ctx context.Context, businessID int64, schedule domain.WeeklySchedule) error
}

// PositionRepository интерфейс репозитория должностей
type PositionRepository interface {
	Create(ctx context.Context, position *domain.Position) (*domain.Position, error)
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Position, error)
	GetWorkingHours(ctx context.Context, positionID int64) (domain.WeeklySchedule, error)
	ReplaceWorkingHours(ctx context.Context, positionID int64, schedule domain.WeeklySchedule) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	ListByBusiness(ctx context.Context, businessID int64, positionID *int64) ([]*domain.Service, error)
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	Create(ctx context.Context, specialist *domain.Specialist) (*domain.Specialist, error)
	ListByBusiness(ctx context.Context, businessID int64, positionID *int64) ([]*domain.Specialist, error)
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
