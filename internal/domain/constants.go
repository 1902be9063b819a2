package domain

// Значения настроек бронирования по умолчанию
const (
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничений
	DefaultMinBookingNoticeMinutes = 60 // 1 час
	DefaultApprovalTimeoutMinutes  = 120
	DefaultReminderBeforeMinutes   = 120
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxAdvanceBookingDays       = 365
	MaxBookingNoticeMinutes     = 10080 // 1 неделя
	MinApprovalTimeoutMinutes   = 5
	MaxApprovalTimeoutMinutes   = 2880 // 2 суток
	MaxReminderBeforeMinutes    = 2880
	MinRating                   = 1
	MaxRating                   = 5
	MaxCommentLength            = 500
	MaxCancellationReasonLength = 500
	MaxNameLength               = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы заказов, занимающих время специалиста
var BlockingStatuses = []OrderStatus{
	StatusActive,
	StatusApproved,
}
