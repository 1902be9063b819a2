package mailer

import "errors"

var (
	// ErrInvalidMessage возвращается для письма без получателя или темы
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSend возвращается при ошибке отправки через SMTP
	ErrSend = errors.New("mailer: failed to send")
)
