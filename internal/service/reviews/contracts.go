package reviews

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
	ListByBusiness(ctx context.Context, businessID int64, limit, offset uint64) ([]*domain.Review, error)
	SummaryByBusiness(ctx context.Context, businessID int64) (*domain.ReviewSummary, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
