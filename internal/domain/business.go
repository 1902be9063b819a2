package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

// Business салон/мастерская, предоставляющая услуги
type Business struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description *string
	Address     string
	Phone       *string
	Email       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwner возвращает true, если пользователь владелец бизнеса
func (b *Business) IsOwner(userID int64) bool {
	return b.OwnerID == userID
}

// WorkingHours рабочие часы на один день недели
// Отсутствие записи для дня недели означает выходной
type WorkingHours struct {
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Interval возвращает рабочий интервал дня
func (h WorkingHours) Interval() Interval {
	return Interval{Start: h.OpenTime, End: h.CloseTime}
}

// WeeklySchedule расписание на неделю
type WeeklySchedule []WorkingHours

// ForWeekday возвращает рабочие часы на день недели
func (s WeeklySchedule) ForWeekday(weekday time.Weekday) (WorkingHours, bool) {
	for _, h := range s {
		if h.Weekday == weekday {
			return h, true
		}
	}
	return WorkingHours{}, false
}

// Position должность/направление внутри бизнеса (парикмахер, мастер маникюра, ...)
// Может иметь собственное расписание, которое сужает расписание бизнеса
type Position struct {
	ID          int64
	BusinessID  int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service услуга, оказываемая специалистами должности
type Service struct {
	ID              int64
	BusinessID      int64
	PositionID      int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Specialist мастер, принимающий заказы
type Specialist struct {
	ID         int64
	BusinessID int64
	PositionID int64
	UserID     int64
	Name       string
	Email      string
	CreatedAt  time.Time
}

// EffectiveWorkingInterval вычисляет рабочий интервал специалиста на день недели
// Расписание должности (если задано на этот день) сужает расписание бизнеса
// Возвращает false, если в этот день работы нет
func EffectiveWorkingInterval(businessHours, positionHours WeeklySchedule, weekday time.Weekday) (Interval, bool) {
	business, ok := businessHours.ForWeekday(weekday)
	if !ok {
		return Interval{}, false
	}

	position, ok := positionHours.ForWeekday(weekday)
	if !ok {
		if len(positionHours) > 0 {
			// Должность со своим расписанием не работает в этот день
			return Interval{}, false
		}
		return business.Interval(), business.Interval().IsValid()
	}

	return Intersect(business.Interval(), position.Interval())
}
