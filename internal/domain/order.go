package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	StatusActive    OrderStatus = "active" // ожидает подтверждения специалистом
	StatusApproved  OrderStatus = "approved"
	StatusDeclined  OrderStatus = "declined"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

// OrderActor сторона, инициировавшая изменение заказа
type OrderActor string

const (
	ActorCustomer   OrderActor = "customer"
	ActorSpecialist OrderActor = "specialist"
	ActorSystem     OrderActor = "system"
)

// orderTransitions допустимые переходы между статусами
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusActive:   {StatusApproved, StatusDeclined, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// Order заказ клиента к специалисту
type Order struct {
	ID              int64
	BusinessID      int64
	SpecialistID    int64
	ServiceID       int64
	CustomerID      int64
	CustomerName    string
	CustomerEmail   string
	OrderDate       time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          OrderStatus

	// Денормализованные данные услуги на момент заказа
	ServiceName string
	Price       decimal.Decimal

	Comment            *string
	CancelledBy        *OrderActor
	CancellationReason *string
	StatusChangedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidOrderStatus проверяет, что строка является известным статусом
func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case StatusActive, StatusApproved, StatusDeclined, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo проверяет допустимость перехода в новый статус
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true, если заказ в конечном статусе
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// BlocksTime возвращает true, если заказ занимает время специалиста
func (o *Order) BlocksTime() bool {
	return o.Status == StatusActive || o.Status == StatusApproved
}

// CanBeCancelled возвращает true, если заказ можно отменить
func (o *Order) CanBeCancelled() bool {
	return o.CanTransitionTo(StatusCancelled)
}

// Interval возвращает занятый заказом интервал [start, start+duration)
func (o *Order) Interval() (Interval, error) {
	end, err := o.StartTime.AddMinutes(o.DurationMinutes)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: o.StartTime, End: end}, nil
}

// StartsAt возвращает момент начала заказа в часовом поясе бизнеса
func (o *Order) StartsAt(loc *time.Location) time.Time {
	return o.StartTime.On(o.OrderDate, loc)
}

// EndsAt возвращает момент окончания заказа в часовом поясе бизнеса
func (o *Order) EndsAt(loc *time.Location) time.Time {
	return o.StartsAt(loc).Add(time.Duration(o.DurationMinutes) * time.Minute)
}

// BusyIntervals возвращает интервалы, занятые блокирующими заказами
func BusyIntervals(orders []*Order) []Interval {
	busy := make([]Interval, 0, len(orders))
	for _, o := range orders {
		if !o.BlocksTime() {
			continue
		}
		interval, err := o.Interval()
		if err != nil {
			continue
		}
		busy = append(busy, interval)
	}
	return busy
}

// OrdersFilter фильтр для выборки заказов
type OrdersFilter struct {
	BusinessID   *int64
	SpecialistID *int64
	CustomerID   *int64
	DateFrom     *time.Time
	DateTo       *time.Time
	Statuses     []OrderStatus
}
