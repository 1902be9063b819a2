package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

// CreateService создает услугу в должности
// Доступно только владельцу бизнеса
func (s *Service) CreateService(ctx context.Context, positionID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q in position=%d by user=%d", req.Name, positionID, req.UserID)

	// 1. Валидируем входные данные
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		s.logger.Warn("CreateService: invalid duration %d", req.DurationMinutes)
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if req.Price.IsNegative() {
		s.logger.Warn("CreateService: negative price %s", req.Price)
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	// 2. Проверяем права на должность
	position, err := s.getOwnedPosition(ctx, "CreateService", positionID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Создаем услугу
	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		BusinessID:      position.BusinessID,
		PositionID:      position.ID,
		Name:            name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price.Round(2),
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	resp := models.FromDomainService(created)
	return &resp, nil
}

// ListServices возвращает услуги бизнеса, опционально одной должности
// Публичный метод - доступен всем
func (s *Service) ListServices(ctx context.Context, businessID int64, positionID *int64) (*models.ServiceListResponse, error) {
	if _, err := s.getBusiness(ctx, "ListServices", businessID); err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.ListByBusiness(ctx, businessID, positionID)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// AddSpecialist добавляет пользователя специалистом в должность
// Доступно только владельцу бизнеса
func (s *Service) AddSpecialist(ctx context.Context, positionID int64, req *models.AddSpecialistRequest) (*models.SpecialistResponse, error) {
	s.logger.Info("AddSpecialist: adding user=%d to position=%d by user=%d", req.SpecialistUserID, positionID, req.UserID)

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if req.SpecialistUserID <= 0 {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if err := validateName(name); err != nil {
		s.logger.Warn("AddSpecialist: validation failed: %v", err)
		return nil, err
	}
	if !strings.Contains(email, "@") {
		s.logger.Warn("AddSpecialist: invalid email %q", email)
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	position, err := s.getOwnedPosition(ctx, "AddSpecialist", positionID, req.UserID)
	if err != nil {
		return nil, err
	}

	created, err := s.specialistRepo.Create(ctx, &domain.Specialist{
		BusinessID: position.BusinessID,
		PositionID: position.ID,
		UserID:     req.SpecialistUserID,
		Name:       name,
		Email:      email,
	})
	if err != nil {
		if errors.Is(err, specialistRepo.ErrDuplicateSpecialist) {
			s.logger.Warn("AddSpecialist: user=%d is already a specialist of position=%d", req.SpecialistUserID, positionID)
			return nil, ErrSpecialistAlreadyExists
		}
		s.logger.Error("AddSpecialist: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddSpecialist - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("AddSpecialist: successfully added specialist id=%d", created.ID)
	resp := models.FromDomainSpecialist(created)
	return &resp, nil
}

// ListSpecialists возвращает специалистов бизнеса, опционально одной должности
// Публичный метод - доступен всем
func (s *Service) ListSpecialists(ctx context.Context, businessID int64, positionID *int64) (*models.SpecialistListResponse, error) {
	if _, err := s.getBusiness(ctx, "ListSpecialists", businessID); err != nil {
		return nil, err
	}

	specialists, err := s.specialistRepo.ListByBusiness(ctx, businessID, positionID)
	if err != nil {
		s.logger.Error("ListSpecialists: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpecialists - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSpecialistList(specialists), nil
}
