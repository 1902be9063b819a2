package complete_order

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
)

type OrderService interface {
	Complete(ctx context.Context, id, userID int64) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
