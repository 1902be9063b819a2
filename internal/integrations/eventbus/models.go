package eventbus

import (
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// EventType тип события заказа
const EventTypeOrderStatusChanged = "order.status_changed.v1"

// OrderEvent событие изменения статуса заказа
type OrderEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	OrderID      int64     `json:"order_id"`
	BusinessID   int64     `json:"business_id"`
	SpecialistID int64     `json:"specialist_id"`
	CustomerID   int64     `json:"customer_id"`
	ServiceID    int64     `json:"service_id"`
	Status       string    `json:"status"`
	PrevStatus   string    `json:"prev_status,omitempty"`
	OrderDate    string    `json:"order_date"`
	StartTime    string    `json:"start_time"`
	Price        string    `json:"price"`
}

// NewOrderEvent собирает событие перехода заказа из prev в его текущий статус
// prev пустой для только что созданного заказа
func NewOrderEvent(order *domain.Order, prev domain.OrderStatus) OrderEvent {
	return OrderEvent{
		OrderID:      order.ID,
		BusinessID:   order.BusinessID,
		SpecialistID: order.SpecialistID,
		CustomerID:   order.CustomerID,
		ServiceID:    order.ServiceID,
		Status:       string(order.Status),
		PrevStatus:   string(prev),
		OrderDate:    order.OrderDate.Format(domain.DateFormat),
		StartTime:    order.StartTime.String(),
		Price:        order.Price.StringFixed(2),
	}
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
