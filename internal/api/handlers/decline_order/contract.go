package decline_order

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
)

type OrderService interface {
	Decline(ctx context.Context, id int64, token string) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
