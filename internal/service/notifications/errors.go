package notifications

import "errors"

var (
	// ErrIssueLink возвращается, когда не удалось выпустить токен ссылки
	ErrIssueLink = errors.New("notifications: failed to issue link token")

	// ErrDelivery возвращается, когда письмо не удалось отправить
	ErrDelivery = errors.New("notifications: delivery failed")
)
