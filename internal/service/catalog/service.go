package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service сервис каталога: бизнесы, расписания, должности, услуги и специалисты
type Service struct {
	businessRepo   BusinessRepository
	positionRepo   PositionRepository
	serviceRepo    ServiceRepository
	specialistRepo SpecialistRepository
	txManager      TxManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	businessRepo BusinessRepository,
	positionRepo PositionRepository,
	serviceRepo ServiceRepository,
	specialistRepo SpecialistRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		businessRepo:   businessRepo,
		positionRepo:   positionRepo,
		serviceRepo:    serviceRepo,
		specialistRepo: specialistRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateBusiness создает бизнес, владельцем становится текущий пользователь
func (s *Service) CreateBusiness(ctx context.Context, req *models.CreateBusinessRequest) (*models.BusinessResponse, error) {
	s.logger.Info("CreateBusiness: creating business %q by user=%d", req.Name, req.UserID)

	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	if err := validateName(name); err != nil {
		s.logger.Warn("CreateBusiness: validation failed: %v", err)
		return nil, err
	}
	if address == "" {
		s.logger.Warn("CreateBusiness: validation failed: empty address")
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	created, err := s.businessRepo.Create(ctx, &domain.Business{
		OwnerID:     req.UserID,
		Name:        name,
		Description: req.Description,
		Address:     address,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		s.logger.Error("CreateBusiness: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBusiness - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateBusiness: successfully created business id=%d", created.ID)
	return models.FromDomainBusiness(created, domain.WeeklySchedule{}), nil
}

// GetBusiness получает бизнес вместе с недельным расписанием
// Публичный метод - доступен всем
func (s *Service) GetBusiness(ctx context.Context, id int64) (*models.BusinessResponse, error) {
	s.logger.Info("GetBusiness: fetching business id=%d", id)

	business, err := s.getBusiness(ctx, "GetBusiness", id)
	if err != nil {
		return nil, err
	}

	schedule, err := s.businessRepo.GetWorkingHours(ctx, id)
	if err != nil {
		s.logger.Error("GetBusiness: failed to get working hours for business id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetBusiness - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBusiness(business, schedule), nil
}

// ListBusinesses возвращает страницу бизнесов, опционально только одного владельца
func (s *Service) ListBusinesses(ctx context.Context, req *models.ListBusinessesRequest) (*models.BusinessListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	businesses, err := s.businessRepo.List(ctx, req.OwnerID, limit, req.Offset)
	if err != nil {
		s.logger.Error("ListBusinesses: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinesses - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBusinesses: found %d businesses", len(businesses))
	return models.FromDomainBusinessList(businesses), nil
}

// UpdateBusiness частично обновляет бизнес
// Доступно только владельцу
func (s *Service) UpdateBusiness(ctx context.Context, id int64, req *models.UpdateBusinessRequest) (*models.BusinessResponse, error) {
	s.logger.Info("UpdateBusiness: updating business id=%d by user=%d", id, req.UserID)

	// 1. Получаем бизнес и проверяем права
	business, err := s.getOwnedBusiness(ctx, "UpdateBusiness", id, req.UserID)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			s.logger.Warn("UpdateBusiness: validation failed: %v", err)
			return nil, err
		}
		business.Name = name
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			s.logger.Warn("UpdateBusiness: validation failed: empty address")
			return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
		}
		business.Address = address
	}
	if req.Description != nil {
		business.Description = req.Description
	}
	if req.Phone != nil {
		business.Phone = req.Phone
	}
	if req.Email != nil {
		business.Email = req.Email
	}

	// 3. Сохраняем
	updated, err := s.businessRepo.Update(ctx, business)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("UpdateBusiness: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateBusiness - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateBusiness: successfully updated business id=%d", id)
	return models.FromDomainBusiness(updated, nil), nil
}

// SetWorkingHours заменяет недельное расписание бизнеса
// Доступно только владельцу. Дни без записи считаются выходными
func (s *Service) SetWorkingHours(ctx context.Context, businessID int64, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: replacing schedule of business id=%d by user=%d", businessID, req.UserID)

	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("SetWorkingHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.getOwnedBusiness(ctx, "SetWorkingHours", businessID, req.UserID); err != nil {
			return err
		}
		if err := s.businessRepo.ReplaceWorkingHours(ctx, businessID, schedule); err != nil {
			s.logger.Error("SetWorkingHours: repository error: %v", err)
			return fmt.Errorf("%w: SetWorkingHours - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetWorkingHours: business id=%d now works %d days a week", businessID, len(schedule))
	return &models.WorkingHoursResponse{Hours: models.FromDomainSchedule(schedule)}, nil
}

// getBusiness получает бизнес и маппит ошибки репозитория
func (s *Service) getBusiness(ctx context.Context, op string, id int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%d not found", op, id)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get business: %w", ErrInternal, op, err)
	}
	return business, nil
}

// getOwnedBusiness получает бизнес и проверяет, что пользователь его владелец
func (s *Service) getOwnedBusiness(ctx context.Context, op string, id, userID int64) (*domain.Business, error) {
	business, err := s.getBusiness(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !business.IsOwner(userID) {
		s.logger.Warn("%s: user=%d is not an owner of business=%d", op, userID, id)
		return nil, ErrAccessDenied
	}
	return business, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}
