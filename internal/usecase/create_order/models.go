package create_order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// Request модель запроса на создание заказа
type Request struct {
	CustomerID    int64
	CustomerName  string
	CustomerEmail string
	SpecialistID  int64
	ServiceID     int64
	Date          time.Time        // Дата заказа (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	Comment       *string
}

// Response модель ответа с созданным заказом
type Response struct {
	ID              int64
	BusinessID      int64
	SpecialistID    int64
	ServiceID       int64
	CustomerID      int64
	OrderDate       time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName string
	Price       decimal.Decimal

	Comment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
