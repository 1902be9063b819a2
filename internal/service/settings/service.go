package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	positionRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/position"
	settingsRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyService/internal/service/settings/models"
)

// Service сервис настроек бронирования
type Service struct {
	settingsRepo SettingsRepository
	businessRepo BusinessRepository
	positionRepo PositionRepository
	txManager    TxManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	businessRepo BusinessRepository,
	positionRepo PositionRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		businessRepo: businessRepo,
		positionRepo: positionRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Resolve возвращает действующие настройки с учетом иерархии
// Приоритет: должность > бизнес > значения по умолчанию
func (s *Service) Resolve(ctx context.Context, businessID int64, positionID *int64) (*domain.BookingSettings, error) {
	settings, err := s.settingsRepo.GetWithHierarchy(ctx, businessID, positionID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultBookingSettings(businessID), nil
		}
		s.logger.Error("Resolve: repository error for business=%d, position=%v: %v", businessID, positionID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %w", ErrInternal, err)
	}
	return settings, nil
}

// GetWithHierarchy получает действующие настройки бизнеса (или должности)
// Публичный метод - доступен всем
func (s *Service) GetWithHierarchy(ctx context.Context, businessID int64, positionID *int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching settings for business=%d, position=%v", businessID, positionID)

	if _, err := s.getBusiness(ctx, "GetWithHierarchy", businessID); err != nil {
		return nil, err
	}

	settings, err := s.Resolve(ctx, businessID, positionID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainSettings(settings)
	s.logger.Info("GetWithHierarchy: resolved settings for business=%d (level: %s)", businessID, resp.Level)
	return resp, nil
}

// ListByBusiness возвращает все сохраненные настройки бизнеса
// Доступно только владельцу
func (s *Service) ListByBusiness(ctx context.Context, businessID, userID int64) (*models.SettingsListResponse, error) {
	s.logger.Info("ListByBusiness: fetching settings for business=%d by user=%d", businessID, userID)

	if err := s.checkOwner(ctx, "ListByBusiness", businessID, userID); err != nil {
		return nil, err
	}

	list, err := s.settingsRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSettingsList(list), nil
}

// Upsert создает или обновляет настройки бизнеса или должности
// Доступно только владельцу
func (s *Service) Upsert(ctx context.Context, businessID int64, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Upsert: saving settings for business=%d, position=%v by user=%d", businessID, req.PositionID, req.UserID)

	var result *domain.BookingSettings
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Проверяем права доступа
		if err := s.checkOwner(ctx, "Upsert", businessID, req.UserID); err != nil {
			return err
		}

		// 2. Проверяем, что должность принадлежит бизнесу
		if req.PositionID != nil {
			if err := s.checkPosition(ctx, "Upsert", businessID, *req.PositionID); err != nil {
				return err
			}
		}

		// 3. Получаем текущие настройки уровня (блокируются до конца транзакции)
		existing, err := s.settingsRepo.GetByBusinessAndPosition(ctx, businessID, req.PositionID)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Upsert: failed to get existing settings: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
		}

		// 4. Применяем изменения и валидируем
		target := existing
		if target == nil {
			target = domain.DefaultBookingSettings(businessID)
			target.PositionID = req.PositionID
		}
		req.ApplyToSettings(target)
		if err := validateSettings(target); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return err
		}

		// 5. Сохраняем
		if existing != nil {
			result, err = s.settingsRepo.Update(ctx, existing.ID, target)
		} else {
			result, err = s.settingsRepo.Create(ctx, target)
		}
		if err != nil {
			s.logger.Error("Upsert: repository error: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: successfully saved settings id=%d", result.ID)
	return models.FromDomainSettings(result), nil
}

// Delete удаляет настройки уровня, после чего действуют настройки уровнем выше
// Доступно только владельцу
func (s *Service) Delete(ctx context.Context, businessID int64, req *models.DeleteSettingsRequest) error {
	s.logger.Info("Delete: deleting settings for business=%d, position=%v by user=%d", businessID, req.PositionID, req.UserID)

	if err := s.checkOwner(ctx, "Delete", businessID, req.UserID); err != nil {
		return err
	}

	if err := s.settingsRepo.DeleteByBusinessAndPosition(ctx, businessID, req.PositionID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Delete: settings not found for business=%d, position=%v", businessID, req.PositionID)
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted settings for business=%d, position=%v", businessID, req.PositionID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBusiness(ctx context.Context, op string, businessID int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%d not found", op, businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%d: %v", op, businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}
	return business, nil
}

// checkOwner проверяет, что пользователь владелец бизнеса
func (s *Service) checkOwner(ctx context.Context, op string, businessID, userID int64) error {
	business, err := s.getBusiness(ctx, op, businessID)
	if err != nil {
		return err
	}
	if !business.IsOwner(userID) {
		s.logger.Warn("%s: user=%d is not an owner of business=%d", op, userID, businessID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) checkPosition(ctx context.Context, op string, businessID, positionID int64) error {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, positionRepo.ErrPositionNotFound) {
			s.logger.Warn("%s: position id=%d not found", op, positionID)
			return ErrPositionNotFound
		}
		s.logger.Error("%s: failed to get position id=%d: %v", op, positionID, err)
		return fmt.Errorf("%w: failed to get position: %w", ErrInternal, err)
	}
	if position.BusinessID != businessID {
		s.logger.Warn("%s: position id=%d belongs to business=%d, not %d", op, positionID, position.BusinessID, businessID)
		return ErrPositionNotFound
	}
	return nil
}

// validateSettings валидирует параметры настроек
func validateSettings(s *domain.BookingSettings) error {
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	if s.ApprovalTimeoutMinutes < domain.MinApprovalTimeoutMinutes || s.ApprovalTimeoutMinutes > domain.MaxApprovalTimeoutMinutes {
		return fmt.Errorf("%w: approvalTimeoutMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinApprovalTimeoutMinutes, domain.MaxApprovalTimeoutMinutes)
	}

	if s.ReminderBeforeMinutes < 0 || s.ReminderBeforeMinutes > domain.MaxReminderBeforeMinutes {
		return fmt.Errorf("%w: reminderBeforeMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxReminderBeforeMinutes)
	}

	return nil
}
