package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на заказ
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidToken возвращается для недействительной ссылки подтверждения/отклонения
	ErrInvalidToken = errors.New("invalid or expired link token")

	// ErrInvalidTransition возвращается, когда заказ нельзя перевести в запрошенный статус
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrCannotCancel возвращается при попытке отменить завершённый заказ
	ErrCannotCancel = errors.New("order cannot be cancelled")

	// ErrTooEarlyToComplete возвращается при попытке завершить заказ до его начала
	ErrTooEarlyToComplete = errors.New("order has not started yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
