package create_position

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

type CatalogService interface {
	CreatePosition(ctx context.Context, businessID int64, req *models.CreatePositionRequest) (*models.PositionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
