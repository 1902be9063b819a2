package delete_settings

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/service/settings/models"
)

type SettingsService interface {
	Delete(ctx context.Context, businessID int64, req *models.DeleteSettingsRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
