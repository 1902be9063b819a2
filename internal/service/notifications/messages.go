package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// Виды писем (label метрики)
const (
	KindReceived        = "received"
	KindApprovalRequest = "approval_request"
	KindApproved        = "approved"
	KindDeclined        = "declined"
	KindAutoDeclined    = "auto_declined"
	KindCancelled       = "cancelled"
	KindReminder        = "reminder"
	KindCompleted       = "completed"
)

// orderSummary общий блок с деталями заказа
func orderSummary(order *domain.Order, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Заказ №%d\n", order.ID)
	fmt.Fprintf(&b, "Услуга: %s\n", order.ServiceName)
	fmt.Fprintf(&b, "Дата и время: %s\n", order.StartsAt(loc).Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "Длительность: %d мин.\n", order.DurationMinutes)
	fmt.Fprintf(&b, "Стоимость: %s\n", order.Price.StringFixed(2))
	if order.Comment != nil && *order.Comment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", *order.Comment)
	}
	return b.String()
}

func receivedBody(order *domain.Order, loc *time.Location) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nВаш заказ принят и ожидает подтверждения мастером.\n\n%s",
		order.CustomerName, orderSummary(order, loc))
}

func approvalRequestBody(order *domain.Order, specialist *domain.Specialist, loc *time.Location, approveURL, declineURL string, timeout time.Duration) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nНовый заказ от клиента %s (%s).\n\n%s\n"+
		"Подтвердить: %s\nОтклонить: %s\n\n"+
		"Если заказ не будет подтверждён в течение %d мин., он будет отклонён автоматически.\n",
		specialist.Name, order.CustomerName, order.CustomerEmail, orderSummary(order, loc),
		approveURL, declineURL, int(timeout.Minutes()))
}

func approvedBody(order *domain.Order, loc *time.Location) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nМастер подтвердил ваш заказ. Ждём вас!\n\n%s",
		order.CustomerName, orderSummary(order, loc))
}

func declinedBody(order *domain.Order, loc *time.Location, auto bool) string {
	reason := "Мастер отклонил ваш заказ."
	if auto {
		reason = "Мастер не подтвердил заказ вовремя, поэтому он был отклонён автоматически."
	}
	return fmt.Sprintf("Здравствуйте, %s!\n\n%s Вы можете выбрать другое время.\n\n%s",
		order.CustomerName, reason, orderSummary(order, loc))
}

func cancelledBody(recipient string, order *domain.Order, loc *time.Location) string {
	by := "мастером"
	if order.CancelledBy != nil && *order.CancelledBy == domain.ActorCustomer {
		by = "клиентом"
	}
	body := fmt.Sprintf("Здравствуйте, %s!\n\nЗаказ был отменён %s.\n", recipient, by)
	if order.CancellationReason != nil && *order.CancellationReason != "" {
		body += fmt.Sprintf("Причина: %s\n", *order.CancellationReason)
	}
	return body + "\n" + orderSummary(order, loc)
}

func reminderBody(order *domain.Order, specialist *domain.Specialist, loc *time.Location) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nНапоминаем о записи к мастеру %s.\n\n%s",
		order.CustomerName, specialist.Name, orderSummary(order, loc))
}

func completedBody(order *domain.Order, loc *time.Location) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nСпасибо, что выбрали нас. Будем рады вашему отзыву.\n\n%s",
		order.CustomerName, orderSummary(order, loc))
}
