package create_order

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("create_order: specialist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_order: service not found")

	// ErrServiceNotProvided возвращается, когда специалист не оказывает эту услугу
	ErrServiceNotProvided = errors.New("create_order: service is not provided by this specialist")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("create_order: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_order: date is too far in the future")

	// ErrBusinessClosed возвращается, когда специалист не работает в этот день недели
	ErrBusinessClosed = errors.New("create_order: business is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда заказ выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_order: time slot is outside working hours")

	// ErrTooLateToBook возвращается, когда заказ нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_order: too late to book this time")

	// ErrSlotNotAvailable возвращается, когда время пересекается с другим заказом
	ErrSlotNotAvailable = errors.New("create_order: time slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
