package reviews

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotCompleted возвращается при попытке оставить отзыв на незавершённый заказ
	ErrOrderNotCompleted = errors.New("order is not completed")

	// ErrReviewAlreadyExists возвращается, если на заказ уже оставлен отзыв
	ErrReviewAlreadyExists = errors.New("review for this order already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
