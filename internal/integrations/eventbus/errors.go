package eventbus

import "errors"

var (
	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("eventbus: failed to marshal event")

	// ErrPublish возвращается при ошибке записи в kafka
	ErrPublish = errors.New("eventbus: failed to publish event")
)
