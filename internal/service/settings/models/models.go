package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// Уровни, с которых взяты настройки
const (
	LevelPosition = "position"
	LevelBusiness = "business"
	LevelDefault  = "default"
)

// Request модели

// UpsertSettingsRequest запрос на создание или обновление настроек
// Все поля опциональны - не переданные значения берутся из текущих настроек уровня
// или из значений по умолчанию
type UpsertSettingsRequest struct {
	UserID                  int64  `json:"-"`
	PositionID              *int64 `json:"positionId,omitempty"` // NULL = для всего бизнеса
	AdvanceBookingDays      *int   `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int   `json:"minBookingNoticeMinutes,omitempty"`
	ApprovalTimeoutMinutes  *int   `json:"approvalTimeoutMinutes,omitempty"`
	ReminderBeforeMinutes   *int   `json:"reminderBeforeMinutes,omitempty"`
}

// DeleteSettingsRequest запрос на удаление настроек уровня
type DeleteSettingsRequest struct {
	UserID     int64
	PositionID *int64
}

// ApplyToSettings применяет переданные поля к настройкам
func (r *UpsertSettingsRequest) ApplyToSettings(s *domain.BookingSettings) {
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.ApprovalTimeoutMinutes != nil {
		s.ApprovalTimeoutMinutes = *r.ApprovalTimeoutMinutes
	}
	if r.ReminderBeforeMinutes != nil {
		s.ReminderBeforeMinutes = *r.ReminderBeforeMinutes
	}
}

// Response модели

// SettingsResponse ответ с настройками бронирования
type SettingsResponse struct {
	ID                      int64     `json:"id,omitempty"`
	BusinessID              int64     `json:"businessId"`
	PositionID              *int64    `json:"positionId,omitempty"`
	Level                   string    `json:"level"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	ApprovalTimeoutMinutes  int       `json:"approvalTimeoutMinutes"`
	ReminderBeforeMinutes   int       `json:"reminderBeforeMinutes"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// SettingsListResponse ответ со списком настроек бизнеса
type SettingsListResponse struct {
	Settings []SettingsResponse `json:"settings"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		ID:                      s.ID,
		BusinessID:              s.BusinessID,
		PositionID:              s.PositionID,
		Level:                   level(s),
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		ApprovalTimeoutMinutes:  s.ApprovalTimeoutMinutes,
		ReminderBeforeMinutes:   s.ReminderBeforeMinutes,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

// FromDomainSettingsList конвертирует список настроек в DTO
func FromDomainSettingsList(list []*domain.BookingSettings) *SettingsListResponse {
	resp := &SettingsListResponse{Settings: make([]SettingsResponse, 0, len(list))}
	for _, s := range list {
		resp.Settings = append(resp.Settings, *FromDomainSettings(s))
	}
	return resp
}

func level(s *domain.BookingSettings) string {
	switch {
	case s.ID == 0:
		return LevelDefault
	case s.IsBusinessWide():
		return LevelBusiness
	default:
		return LevelPosition
	}
}
