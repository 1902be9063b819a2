package orders

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// HandleDeclineTimeout отклоняет заказ, не подтверждённый вовремя
// Если заказ уже не ACTIVE, задача ничего не делает
func (s *Service) HandleDeclineTimeout(ctx context.Context, orderID int64) error {
	order, prev, err := s.decline(ctx, "HandleDeclineTimeout", orderID, domain.ActorSystem, true)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}

	s.afterTransition(ctx, "HandleDeclineTimeout", order, prev, func() error {
		return s.notifier.OrderDeclined(ctx, order, true)
	})
	return nil
}

// HandleReminder отправляет напоминание клиенту и специалисту
// Ошибка отправки возвращается, чтобы задача была повторена
func (s *Service) HandleReminder(ctx context.Context, orderID int64) error {
	order, err := s.getOrder(ctx, "HandleReminder", orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusApproved {
		s.logger.Info("HandleReminder: order id=%d is %s, reminder skipped", orderID, order.Status)
		return nil
	}

	specialist, err := s.getSpecialist(ctx, "HandleReminder", order.SpecialistID)
	if err != nil {
		return err
	}

	if err := s.notifier.OrderReminder(ctx, order, specialist); err != nil {
		s.logger.Warn("HandleReminder: failed to remind about order id=%d: %v", orderID, err)
		return fmt.Errorf("%w: HandleReminder - %w", ErrInternal, err)
	}

	s.logger.Info("HandleReminder: reminder for order id=%d sent", orderID)
	return nil
}

// HandleAutoComplete завершает подтверждённый заказ после его окончания
// Если заказ уже не APPROVED, задача ничего не делает
func (s *Service) HandleAutoComplete(ctx context.Context, orderID int64) error {
	var order *domain.Order
	var prev domain.OrderStatus
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.getOrder(txCtx, "HandleAutoComplete", orderID)
		if err != nil {
			return err
		}
		prev = order.Status

		if order.Status != domain.StatusApproved {
			s.logger.Info("HandleAutoComplete: order id=%d is already %s, nothing to do", orderID, order.Status)
			order = nil
			return nil
		}

		if err := s.transit(txCtx, "HandleAutoComplete", order, domain.StatusCompleted, nil, nil); err != nil {
			return err
		}
		return s.cancelJobs(txCtx, "HandleAutoComplete", order.ID, domain.JobReminder)
	})
	if err != nil || order == nil {
		return err
	}

	s.logger.Info("HandleAutoComplete: order id=%d completed", orderID)
	s.afterTransition(ctx, "HandleAutoComplete", order, prev, func() error {
		return s.notifier.OrderCompleted(ctx, order)
	})
	return nil
}

// scheduleApprovedJobs планирует напоминание и автозавершение подтверждённого заказа
// Напоминание не планируется, если оно выключено или его время уже прошло
func (s *Service) scheduleApprovedJobs(ctx context.Context, order *domain.Order, settings *domain.BookingSettings) error {
	now := s.timeProvider.Now()

	if settings.ReminderBeforeMinutes > 0 {
		remindAt := order.StartsAt(s.loc).Add(-settings.ReminderBefore())
		if remindAt.After(now) {
			if err := s.jobRepo.Schedule(ctx, order.ID, domain.JobReminder, remindAt); err != nil {
				s.logger.Error("Approve: failed to schedule reminder for order id=%d: %v", order.ID, err)
				return fmt.Errorf("%w: failed to schedule reminder: %w", ErrInternal, err)
			}
		} else {
			s.logger.Info("Approve: reminder time for order id=%d has passed, skipped", order.ID)
		}
	}

	if err := s.jobRepo.Schedule(ctx, order.ID, domain.JobAutoComplete, order.EndsAt(s.loc)); err != nil {
		s.logger.Error("Approve: failed to schedule auto completion for order id=%d: %v", order.ID, err)
		return fmt.Errorf("%w: failed to schedule auto completion: %w", ErrInternal, err)
	}
	return nil
}
