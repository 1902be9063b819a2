package create_order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	createOrder "github.com/m04kA/SMC-BeautyService/internal/usecase/create_order"
	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid order date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	SpecialistID  int64   `json:"specialistId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`      // "2026-05-04"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Comment       *string `json:"comment,omitempty"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID              int64           `json:"id"`
	BusinessID      int64           `json:"businessId"`
	SpecialistID    int64           `json:"specialistId"`
	ServiceID       int64           `json:"serviceId"`
	CustomerID      int64           `json:"customerId"`
	OrderDate       string          `json:"orderDate"`
	StartTime       string          `json:"startTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	ServiceName     string          `json:"serviceName"`
	Price           decimal.Decimal `json:"price"`
	Comment         *string         `json:"comment,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(customerID int64) (*createOrder.Request, error) {
	orderDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createOrder.Request{
		CustomerID:    customerID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		SpecialistID:  r.SpecialistID,
		ServiceID:     r.ServiceID,
		Date:          orderDate,
		StartTime:     startTime,
		Comment:       r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *OrderResponse {
	return &OrderResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		SpecialistID:    resp.SpecialistID,
		ServiceID:       resp.ServiceID,
		CustomerID:      resp.CustomerID,
		OrderDate:       resp.OrderDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		Price:           resp.Price,
		Comment:         resp.Comment,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
