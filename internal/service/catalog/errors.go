package catalog

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrPositionNotFound возвращается, когда должность не найдена
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionAlreadyExists возвращается при дублировании названия должности
	ErrPositionAlreadyExists = errors.New("position already exists")

	// ErrSpecialistAlreadyExists возвращается, если пользователь уже специалист этой должности
	ErrSpecialistAlreadyExists = errors.New("specialist already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
