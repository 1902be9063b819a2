package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/mailer"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
)

// Service формирует и отправляет письма об изменениях заказа
type Service struct {
	mailer  Mailer
	signer  LinkSigner
	baseURL string
	loc     *time.Location
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	mailer Mailer,
	signer LinkSigner,
	baseURL string,
	loc *time.Location,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		mailer:  mailer,
		signer:  signer,
		baseURL: strings.TrimRight(baseURL, "/"),
		loc:     loc,
		metrics: metrics,
		logger:  logger,
	}
}

// OrderCreated уведомляет клиента о приёме заказа и отправляет мастеру ссылки подтверждения/отклонения
func (s *Service) OrderCreated(ctx context.Context, order *domain.Order, specialist *domain.Specialist, approvalTimeout time.Duration) error {
	approveURL, err := s.actionURL(order.ID, linktoken.ActionApprove)
	if err != nil {
		return err
	}
	declineURL, err := s.actionURL(order.ID, linktoken.ActionDecline)
	if err != nil {
		return err
	}

	return errors.Join(
		s.send(ctx, KindReceived, mailer.Message{
			To:      order.CustomerEmail,
			Subject: fmt.Sprintf("Заказ №%d принят", order.ID),
			Body:    receivedBody(order, s.loc),
		}),
		s.send(ctx, KindApprovalRequest, mailer.Message{
			To:      specialist.Email,
			Subject: fmt.Sprintf("Новый заказ №%d ожидает подтверждения", order.ID),
			Body:    approvalRequestBody(order, specialist, s.loc, approveURL, declineURL, approvalTimeout),
		}),
	)
}

// OrderApproved уведомляет клиента о подтверждении
func (s *Service) OrderApproved(ctx context.Context, order *domain.Order) error {
	return s.send(ctx, KindApproved, mailer.Message{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Заказ №%d подтверждён", order.ID),
		Body:    approvedBody(order, s.loc),
	})
}

// OrderDeclined уведомляет клиента об отклонении (вручную или по таймауту)
func (s *Service) OrderDeclined(ctx context.Context, order *domain.Order, auto bool) error {
	kind := KindDeclined
	if auto {
		kind = KindAutoDeclined
	}
	return s.send(ctx, kind, mailer.Message{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Заказ №%d отклонён", order.ID),
		Body:    declinedBody(order, s.loc, auto),
	})
}

// OrderCancelled уведомляет другую сторону об отмене
func (s *Service) OrderCancelled(ctx context.Context, order *domain.Order, specialist *domain.Specialist) error {
	to, name := order.CustomerEmail, order.CustomerName
	if order.CancelledBy != nil && *order.CancelledBy == domain.ActorCustomer {
		to, name = specialist.Email, specialist.Name
	}

	return s.send(ctx, KindCancelled, mailer.Message{
		To:      to,
		Subject: fmt.Sprintf("Заказ №%d отменён", order.ID),
		Body:    cancelledBody(name, order, s.loc),
	})
}

// OrderReminder напоминает клиенту о предстоящей записи
func (s *Service) OrderReminder(ctx context.Context, order *domain.Order, specialist *domain.Specialist) error {
	return s.send(ctx, KindReminder, mailer.Message{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Напоминание о записи %s", order.StartsAt(s.loc).Format("02.01 15:04")),
		Body:    reminderBody(order, specialist, s.loc),
	})
}

// OrderCompleted благодарит клиента и предлагает оставить отзыв
func (s *Service) OrderCompleted(ctx context.Context, order *domain.Order) error {
	return s.send(ctx, KindCompleted, mailer.Message{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Заказ №%d выполнен", order.ID),
		Body:    completedBody(order, s.loc),
	})
}

func (s *Service) actionURL(orderID int64, action linktoken.Action) (string, error) {
	token, err := s.signer.Issue(orderID, action)
	if err != nil {
		s.logger.Error("actionURL: failed to issue %s token for order id=%d: %v", action, orderID, err)
		return "", fmt.Errorf("%w: order_id=%d action=%s: %w", ErrIssueLink, orderID, action, err)
	}
	return fmt.Sprintf("%s/api/v1/orders/%d/%s?token=%s", s.baseURL, orderID, action, url.QueryEscape(token)), nil
}

func (s *Service) send(ctx context.Context, kind string, msg mailer.Message) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail(kind, "error")
		s.logger.Warn("send: %s email to=%s failed: %v", kind, msg.To, err)
		return fmt.Errorf("%w: %s: %w", ErrDelivery, kind, err)
	}
	s.metrics.ObserveEmail(kind, "ok")
	return nil
}
