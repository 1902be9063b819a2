package get_statistics

import (
	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// Request модель запроса статистики бизнеса
type Request struct {
	BusinessID int64
	UserID     int64 // Должен быть владельцем бизнеса
	Interval   domain.StatisticsInterval
}

// Response модель ответа со статистикой
type Response struct {
	Statistics *domain.Statistics
}
