package add_specialist

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

type CatalogService interface {
	AddSpecialist(ctx context.Context, positionID int64, req *models.AddSpecialistRequest) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
