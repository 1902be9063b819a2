package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
)

// Approve подтверждает заказ по ссылке специалиста
// Снимает таймаут подтверждения и планирует напоминание и автозавершение
func (s *Service) Approve(ctx context.Context, id int64, token string) (*models.OrderResponse, error) {
	s.logger.Info("Approve: approving order id=%d", id)

	if err := s.links.Verify(token, id, linktoken.ActionApprove); err != nil {
		s.logger.Warn("Approve: invalid token for order id=%d: %v", id, err)
		return nil, ErrInvalidToken
	}

	var order *domain.Order
	var prev domain.OrderStatus
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.getOrder(txCtx, "Approve", id)
		if err != nil {
			return err
		}
		prev = order.Status

		specialist, err := s.getSpecialist(txCtx, "Approve", order.SpecialistID)
		if err != nil {
			return err
		}
		settings, err := s.settings.Resolve(txCtx, order.BusinessID, &specialist.PositionID)
		if err != nil {
			s.logger.Error("Approve: failed to resolve settings: %v", err)
			return fmt.Errorf("%w: failed to resolve settings: %w", ErrInternal, err)
		}

		if err := s.transit(txCtx, "Approve", order, domain.StatusApproved, nil, nil); err != nil {
			return err
		}
		if err := s.cancelJobs(txCtx, "Approve", order.ID, domain.JobDeclineTimeout); err != nil {
			return err
		}
		return s.scheduleApprovedJobs(txCtx, order, settings)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Approve: order id=%d approved", id)
	s.afterTransition(ctx, "Approve", order, prev, func() error {
		return s.notifier.OrderApproved(ctx, order)
	})
	return models.FromDomainOrder(order), nil
}

// Decline отклоняет заказ по ссылке специалиста
func (s *Service) Decline(ctx context.Context, id int64, token string) (*models.OrderResponse, error) {
	s.logger.Info("Decline: declining order id=%d", id)

	if err := s.links.Verify(token, id, linktoken.ActionDecline); err != nil {
		s.logger.Warn("Decline: invalid token for order id=%d: %v", id, err)
		return nil, ErrInvalidToken
	}

	order, prev, err := s.decline(ctx, "Decline", id, domain.ActorSpecialist, false)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, "Decline", order, prev, func() error {
		return s.notifier.OrderDeclined(ctx, order, false)
	})
	return models.FromDomainOrder(order), nil
}

// Cancel отменяет заказ
// Клиент отменяет как клиент, специалист и владелец бизнеса - как специалист
// Уведомление получает другая сторона
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelOrderRequest) (*models.OrderResponse, error) {
	s.logger.Info("Cancel: cancelling order id=%d by user=%d", id, req.UserID)

	reason, err := normalizeReason(req.Reason)
	if err != nil {
		s.logger.Warn("Cancel: validation failed: %v", err)
		return nil, err
	}

	var order *domain.Order
	var specialist *domain.Specialist
	var prev domain.OrderStatus
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.getOrder(txCtx, "Cancel", id)
		if err != nil {
			return err
		}
		prev = order.Status

		// 1. Определяем, кто отменяет
		actor := domain.ActorCustomer
		if order.CustomerID == req.UserID {
			specialist, err = s.getSpecialist(txCtx, "Cancel", order.SpecialistID)
		} else {
			actor = domain.ActorSpecialist
			specialist, err = s.checkStaff(txCtx, "Cancel", order, req.UserID)
		}
		if err != nil {
			return err
		}

		// 2. Завершённый заказ отменить нельзя
		if !order.CanBeCancelled() {
			s.logger.Warn("Cancel: order id=%d is already %s", id, order.Status)
			return ErrCannotCancel
		}

		// 3. Переводим статус и снимаем все отложенные задачи
		if err := s.transit(txCtx, "Cancel", order, domain.StatusCancelled, &actor, reason); err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				return ErrCannotCancel
			}
			return err
		}
		return s.cancelJobs(txCtx, "Cancel", order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: order id=%d cancelled by %s", id, *order.CancelledBy)
	s.afterTransition(ctx, "Cancel", order, prev, func() error {
		return s.notifier.OrderCancelled(ctx, order, specialist)
	})
	return models.FromDomainOrder(order), nil
}

// Complete завершает подтверждённый заказ после его начала
// Доступно специалисту заказа и владельцу бизнеса
func (s *Service) Complete(ctx context.Context, id, userID int64) (*models.OrderResponse, error) {
	s.logger.Info("Complete: completing order id=%d by user=%d", id, userID)

	var order *domain.Order
	var prev domain.OrderStatus
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.getOrder(txCtx, "Complete", id)
		if err != nil {
			return err
		}
		prev = order.Status

		if _, err := s.checkStaff(txCtx, "Complete", order, userID); err != nil {
			return err
		}

		if order.Status == domain.StatusApproved && s.timeProvider.Now().Before(order.StartsAt(s.loc)) {
			s.logger.Warn("Complete: order id=%d starts at %s", id, order.StartsAt(s.loc))
			return ErrTooEarlyToComplete
		}

		if err := s.transit(txCtx, "Complete", order, domain.StatusCompleted, nil, nil); err != nil {
			return err
		}
		return s.cancelJobs(txCtx, "Complete", order.ID, domain.JobReminder, domain.JobAutoComplete)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: order id=%d completed", id)
	s.afterTransition(ctx, "Complete", order, prev, func() error {
		return s.notifier.OrderCompleted(ctx, order)
	})
	return models.FromDomainOrder(order), nil
}

// decline переводит ACTIVE заказ в DECLINED и снимает отложенные задачи
// При skipIfChanged заказ в другом статусе пропускается без ошибки (order == nil)
func (s *Service) decline(ctx context.Context, op string, id int64, actor domain.OrderActor, skipIfChanged bool) (*domain.Order, domain.OrderStatus, error) {
	var order *domain.Order
	var prev domain.OrderStatus
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.getOrder(txCtx, op, id)
		if err != nil {
			return err
		}
		prev = order.Status

		if skipIfChanged && order.Status != domain.StatusActive {
			s.logger.Info("%s: order id=%d is already %s, nothing to do", op, id, order.Status)
			order = nil
			return nil
		}

		if err := s.transit(txCtx, op, order, domain.StatusDeclined, &actor, nil); err != nil {
			return err
		}
		return s.cancelJobs(txCtx, op, order.ID)
	})
	if err != nil {
		return nil, "", err
	}
	if order != nil {
		s.logger.Info("%s: order id=%d declined by %s", op, id, actor)
	}
	return order, prev, nil
}

// transit переводит заказ в новый статус, если переход допустим
// Обновление условное: параллельное изменение статуса даёт ErrInvalidTransition
func (s *Service) transit(ctx context.Context, op string, order *domain.Order, to domain.OrderStatus, actor *domain.OrderActor, reason *string) error {
	if !order.CanTransitionTo(to) {
		s.logger.Warn("%s: order id=%d cannot move from %s to %s", op, order.ID, order.Status, to)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, to)
	}

	now := s.timeProvider.Now()
	err := s.orderRepo.UpdateStatus(ctx, order.ID, orderRepo.StatusUpdate{
		From:               order.Status,
		To:                 to,
		CancelledBy:        actor,
		CancellationReason: reason,
		ChangedAt:          now,
	})
	if err != nil {
		if errors.Is(err, orderRepo.ErrStatusConflict) {
			s.logger.Warn("%s: order id=%d status changed concurrently", op, order.ID)
			return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("%s: failed to update status of order id=%d: %v", op, order.ID, err)
		return fmt.Errorf("%w: %s - failed to update status: %w", ErrInternal, op, err)
	}

	order.Status = to
	order.StatusChangedAt = &now
	if actor != nil {
		order.CancelledBy = actor
		order.CancellationReason = reason
	}
	return nil
}

func (s *Service) cancelJobs(ctx context.Context, op string, orderID int64, kinds ...domain.JobKind) error {
	if err := s.jobRepo.CancelPending(ctx, orderID, kinds...); err != nil {
		s.logger.Error("%s: failed to cancel jobs of order id=%d: %v", op, orderID, err)
		return fmt.Errorf("%w: %s - failed to cancel jobs: %w", ErrInternal, op, err)
	}
	return nil
}

// afterTransition выполняет побочные эффекты после фиксации перехода
// Ошибки уведомлений и публикации логируются и не влияют на результат
func (s *Service) afterTransition(ctx context.Context, op string, order *domain.Order, prev domain.OrderStatus, notify func() error) {
	s.metrics.ObserveTransition(string(order.Status))

	if err := notify(); err != nil {
		s.logger.Warn("%s: notifications for order id=%d failed: %v", op, order.ID, err)
	}

	if err := s.publisher.PublishOrderEvent(ctx, eventbus.NewOrderEvent(order, prev)); err != nil {
		s.logger.Warn("%s: failed to publish event for order id=%d: %v", op, order.ID, err)
	}
}

func normalizeReason(reason *string) (*string, error) {
	if reason == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return &trimmed, nil
}
