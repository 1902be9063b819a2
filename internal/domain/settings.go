package domain

import "time"

// BookingSettings настройки бронирования бизнеса
// Поддерживает иерархию:
// 1. Настройки для конкретной должности (business_id, position_id)
// 2. Настройки для всего бизнеса (business_id, NULL)
type BookingSettings struct {
	ID                      int64
	BusinessID              int64
	PositionID              *int64 // NULL = для всех должностей
	AdvanceBookingDays      int    // 0 = без ограничений
	MinBookingNoticeMinutes int
	ApprovalTimeoutMinutes  int
	ReminderBeforeMinutes   int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultBookingSettings настройки, применяемые при отсутствии записи в БД
func DefaultBookingSettings(businessID int64) *BookingSettings {
	return &BookingSettings{
		BusinessID:              businessID,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		ApprovalTimeoutMinutes:  DefaultApprovalTimeoutMinutes,
		ReminderBeforeMinutes:   DefaultReminderBeforeMinutes,
	}
}

// IsBusinessWide возвращает true для настроек всего бизнеса
func (s *BookingSettings) IsBusinessWide() bool {
	return s.PositionID == nil
}

// HasAdvanceBookingLimit возвращает true, если есть ограничение на дальность записи
func (s *BookingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// ApprovalTimeout время на подтверждение заказа специалистом
func (s *BookingSettings) ApprovalTimeout() time.Duration {
	return time.Duration(s.ApprovalTimeoutMinutes) * time.Minute
}

// ReminderBefore за сколько до начала отправлять напоминание
func (s *BookingSettings) ReminderBefore() time.Duration {
	return time.Duration(s.ReminderBeforeMinutes) * time.Minute
}
