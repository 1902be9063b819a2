package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается для неизвестного дня недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidHours возвращается для некорректного рабочего интервала
	ErrInvalidHours = errors.New("invalid working hours")
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Request модели

// CreateBusinessRequest запрос на создание бизнеса
type CreateBusinessRequest struct {
	UserID      int64   `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// UpdateBusinessRequest запрос на обновление бизнеса
// Все поля опциональны - обновляются только переданные значения
type UpdateBusinessRequest struct {
	UserID      int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// ListBusinessesRequest запрос на получение списка бизнесов
type ListBusinessesRequest struct {
	OwnerID *int64
	Limit   uint64
	Offset  uint64
}

// WorkingHoursDTO рабочие часы на день недели
type WorkingHoursDTO struct {
	Weekday   string `json:"weekday"`   // "monday" ... "sunday"
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00", "24:00" допустимо
}

// SetWorkingHoursRequest запрос на замену недельного расписания
type SetWorkingHoursRequest struct {
	UserID int64             `json:"-"`
	Hours  []WorkingHoursDTO `json:"hours"`
}

// ToDomainSchedule конвертирует DTO в расписание с валидацией
func (r *SetWorkingHoursRequest) ToDomainSchedule() (domain.WeeklySchedule, error) {
	schedule := make(domain.WeeklySchedule, 0, len(r.Hours))
	seen := make(map[time.Weekday]bool, len(r.Hours))

	for _, h := range r.Hours {
		weekday, ok := weekdays[strings.ToLower(strings.TrimSpace(h.Weekday))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, h.Weekday)
		}
		if seen[weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %q", ErrInvalidHours, h.Weekday)
		}
		seen[weekday] = true

		open, err := types.NewTimeStringFromString(h.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %s open time: %w", ErrInvalidHours, h.Weekday, err)
		}
		closeTime, err := types.NewTimeStringFromString(h.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %s close time: %w", ErrInvalidHours, h.Weekday, err)
		}

		hours := domain.WorkingHours{Weekday: weekday, OpenTime: open, CloseTime: closeTime}
		if !hours.Interval().IsValid() {
			return nil, fmt.Errorf("%w: %s opens at %s and closes at %s", ErrInvalidHours, h.Weekday, open, closeTime)
		}
		schedule = append(schedule, hours)
	}

	return schedule, nil
}

// CreatePositionRequest запрос на создание должности
type CreatePositionRequest struct {
	UserID      int64   `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64           `json:"-"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// AddSpecialistRequest запрос на добавление специалиста в должность
type AddSpecialistRequest struct {
	UserID           int64  `json:"-"`
	SpecialistUserID int64  `json:"userId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
}

// Response модели

// BusinessResponse ответ с данными бизнеса
type BusinessResponse struct {
	ID           int64             `json:"id"`
	OwnerID      int64             `json:"ownerId"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	Address      string            `json:"address"`
	Phone        *string           `json:"phone,omitempty"`
	Email        *string           `json:"email,omitempty"`
	WorkingHours []WorkingHoursDTO `json:"workingHours,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// BusinessListResponse ответ со списком бизнесов
type BusinessListResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// WorkingHoursResponse ответ с недельным расписанием
type WorkingHoursResponse struct {
	Hours []WorkingHoursDTO `json:"hours"`
}

// PositionResponse ответ с данными должности
type PositionResponse struct {
	ID           int64             `json:"id"`
	BusinessID   int64             `json:"businessId"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	WorkingHours []WorkingHoursDTO `json:"workingHours"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// PositionListResponse ответ со списком должностей
type PositionListResponse struct {
	Positions []PositionResponse `json:"positions"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64           `json:"id"`
	BusinessID      int64           `json:"businessId"`
	PositionID      int64           `json:"positionId"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// SpecialistResponse ответ с данными специалиста
type SpecialistResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	PositionID int64  `json:"positionId"`
	UserID     int64  `json:"userId"`
	Name       string `json:"name"`
}

// SpecialistListResponse ответ со списком специалистов
type SpecialistListResponse struct {
	Specialists []SpecialistResponse `json:"specialists"`
}

// Методы конвертации

// FromDomainSchedule конвертирует расписание в DTO
func FromDomainSchedule(schedule domain.WeeklySchedule) []WorkingHoursDTO {
	result := make([]WorkingHoursDTO, len(schedule))
	for i, h := range schedule {
		result[i] = WorkingHoursDTO{
			Weekday:   strings.ToLower(h.Weekday.String()),
			OpenTime:  h.OpenTime.String(),
			CloseTime: h.CloseTime.String(),
		}
	}
	return result
}

// FromDomainBusiness конвертирует domain модель в DTO
func FromDomainBusiness(b *domain.Business, schedule domain.WeeklySchedule) *BusinessResponse {
	if b == nil {
		return nil
	}
	resp := &BusinessResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if schedule != nil {
		resp.WorkingHours = FromDomainSchedule(schedule)
	}
	return resp
}

// FromDomainBusinessList конвертирует список бизнесов в DTO
func FromDomainBusinessList(businesses []*domain.Business) *BusinessListResponse {
	resp := &BusinessListResponse{Businesses: make([]BusinessResponse, 0, len(businesses))}
	for _, b := range businesses {
		resp.Businesses = append(resp.Businesses, *FromDomainBusiness(b, nil))
	}
	return resp
}

// FromDomainPosition конвертирует должность в DTO
func FromDomainPosition(p *domain.Position, schedule domain.WeeklySchedule) PositionResponse {
	return PositionResponse{
		ID:           p.ID,
		BusinessID:   p.BusinessID,
		Name:         p.Name,
		Description:  p.Description,
		WorkingHours: FromDomainSchedule(schedule),
		CreatedAt:    p.CreatedAt,
	}
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		PositionID:      s.PositionID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, FromDomainService(s))
	}
	return resp
}

// FromDomainSpecialist конвертирует специалиста в DTO
// Email специалиста в публичный ответ не попадает
func FromDomainSpecialist(s *domain.Specialist) SpecialistResponse {
	return SpecialistResponse{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		PositionID: s.PositionID,
		UserID:     s.UserID,
		Name:       s.Name,
	}
}

// FromDomainSpecialistList конвертирует список специалистов в DTO
func FromDomainSpecialistList(specialists []*domain.Specialist) *SpecialistListResponse {
	resp := &SpecialistListResponse{Specialists: make([]SpecialistResponse, 0, len(specialists))}
	for _, s := range specialists {
		resp.Specialists = append(resp.Specialists, FromDomainSpecialist(s))
	}
	return resp
}
