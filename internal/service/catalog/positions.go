package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	positionRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/position"
	"github.com/m04kA/SMC-BeautyService/internal/service/catalog/models"
)

// CreatePosition создает должность в бизнесе
// Доступно только владельцу
func (s *Service) CreatePosition(ctx context.Context, businessID int64, req *models.CreatePositionRequest) (*models.PositionResponse, error) {
	s.logger.Info("CreatePosition: creating position %q in business=%d by user=%d", req.Name, businessID, req.UserID)

	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		s.logger.Warn("CreatePosition: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getOwnedBusiness(ctx, "CreatePosition", businessID, req.UserID); err != nil {
		return nil, err
	}

	created, err := s.positionRepo.Create(ctx, &domain.Position{
		BusinessID:  businessID,
		Name:        name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, positionRepo.ErrDuplicatePosition) {
			s.logger.Warn("CreatePosition: position %q already exists in business=%d", name, businessID)
			return nil, ErrPositionAlreadyExists
		}
		s.logger.Error("CreatePosition: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePosition - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreatePosition: successfully created position id=%d", created.ID)
	resp := models.FromDomainPosition(created, domain.WeeklySchedule{})
	return &resp, nil
}

// ListPositions возвращает должности бизнеса с их расписаниями
// Публичный метод - доступен всем
func (s *Service) ListPositions(ctx context.Context, businessID int64) (*models.PositionListResponse, error) {
	if _, err := s.getBusiness(ctx, "ListPositions", businessID); err != nil {
		return nil, err
	}

	positions, err := s.positionRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListPositions: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPositions - repository error: %w", ErrInternal, err)
	}

	resp := &models.PositionListResponse{Positions: make([]models.PositionResponse, 0, len(positions))}
	for _, p := range positions {
		schedule, err := s.positionRepo.GetWorkingHours(ctx, p.ID)
		if err != nil {
			s.logger.Error("ListPositions: failed to get working hours for position id=%d: %v", p.ID, err)
			return nil, fmt.Errorf("%w: ListPositions - repository error: %w", ErrInternal, err)
		}
		resp.Positions = append(resp.Positions, models.FromDomainPosition(p, schedule))
	}

	s.logger.Info("ListPositions: found %d positions for business=%d", len(positions), businessID)
	return resp, nil
}

// SetPositionHours заменяет расписание должности
// Пустое расписание означает, что должность работает по часам бизнеса
// Доступно только владельцу бизнеса
func (s *Service) SetPositionHours(ctx context.Context, positionID int64, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetPositionHours: replacing schedule of position id=%d by user=%d", positionID, req.UserID)

	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("SetPositionHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.getOwnedPosition(ctx, "SetPositionHours", positionID, req.UserID); err != nil {
			return err
		}
		if err := s.positionRepo.ReplaceWorkingHours(ctx, positionID, schedule); err != nil {
			s.logger.Error("SetPositionHours: repository error: %v", err)
			return fmt.Errorf("%w: SetPositionHours - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.WorkingHoursResponse{Hours: models.FromDomainSchedule(schedule)}, nil
}

// getOwnedPosition получает должность и проверяет, что пользователь владелец её бизнеса
func (s *Service) getOwnedPosition(ctx context.Context, op string, positionID, userID int64) (*domain.Position, error) {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, positionRepo.ErrPositionNotFound) {
			s.logger.Warn("%s: position id=%d not found", op, positionID)
			return nil, ErrPositionNotFound
		}
		s.logger.Error("%s: failed to get position id=%d: %v", op, positionID, err)
		return nil, fmt.Errorf("%w: %s - failed to get position: %w", ErrInternal, op, err)
	}

	if _, err := s.getOwnedBusiness(ctx, op, position.BusinessID, userID); err != nil {
		return nil, err
	}
	return position, nil
}
