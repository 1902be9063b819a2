package get_statistics

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_statistics: business not found")

	// ErrAccessDenied возвращается, когда статистику запрашивает не владелец
	ErrAccessDenied = errors.New("get_statistics: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_statistics: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_statistics: internal error")
)
