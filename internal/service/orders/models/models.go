package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// Request модели

// CancelOrderRequest запрос на отмену заказа
type CancelOrderRequest struct {
	UserID int64   `json:"-"`
	Reason *string `json:"reason,omitempty"`
}

// GetCustomerOrdersRequest запрос на получение заказов клиента
type GetCustomerOrdersRequest struct {
	UserID int64
	Status *domain.OrderStatus
}

// GetSpecialistOrdersRequest запрос на получение заказов специалиста
// Доступно самому специалисту и владельцу бизнеса
type GetSpecialistOrdersRequest struct {
	SpecialistID int64
	UserID       int64
	Date         *time.Time
	Status       *domain.OrderStatus
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID                 int64           `json:"id"`
	BusinessID         int64           `json:"businessId"`
	SpecialistID       int64           `json:"specialistId"`
	ServiceID          int64           `json:"serviceId"`
	CustomerID         int64           `json:"customerId"`
	CustomerName       string          `json:"customerName"`
	OrderDate          string          `json:"orderDate"`
	StartTime          string          `json:"startTime"`
	DurationMinutes    int             `json:"durationMinutes"`
	Status             string          `json:"status"`
	ServiceName        string          `json:"serviceName"`
	Price              decimal.Decimal `json:"price"`
	Comment            *string         `json:"comment,omitempty"`
	CancelledBy        *string         `json:"cancelledBy,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	StatusChangedAt    *time.Time      `json:"statusChangedAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:                 o.ID,
		BusinessID:         o.BusinessID,
		SpecialistID:       o.SpecialistID,
		ServiceID:          o.ServiceID,
		CustomerID:         o.CustomerID,
		CustomerName:       o.CustomerName,
		OrderDate:          o.OrderDate.Format(domain.DateFormat),
		StartTime:          o.StartTime.String(),
		DurationMinutes:    o.DurationMinutes,
		Status:             string(o.Status),
		ServiceName:        o.ServiceName,
		Price:              o.Price,
		Comment:            o.Comment,
		CancellationReason: o.CancellationReason,
		StatusChangedAt:    o.StatusChangedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.CancelledBy != nil {
		actor := string(*o.CancelledBy)
		resp.CancelledBy = &actor
	}
	return resp
}

// FromDomainOrderList конвертирует список заказов в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{Orders: make([]OrderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o))
	}
	return resp
}
