package get_availability

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("get_availability: specialist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не оказывается специалистом
	ErrServiceNotFound = errors.New("get_availability: service not found")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_availability: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_availability: date is too far in the future")

	// ErrBusinessClosed возвращается, когда специалист не работает в этот день недели
	ErrBusinessClosed = errors.New("get_availability: business is closed on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
