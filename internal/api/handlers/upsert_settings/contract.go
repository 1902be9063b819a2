package upsert_settings

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/service/settings/models"
)

type SettingsService interface {
	Upsert(ctx context.Context, businessID int64, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
