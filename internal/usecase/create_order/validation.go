package create_order

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// CustomerEmail приводится к разобранному адресу
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	email, err := parseEmail(req.CustomerEmail)
	if err != nil {
		return err
	}
	req.CustomerEmail = email

	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %w", ErrInvalidInput, err)
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}

// parseEmail разбирает адрес клиента и возвращает его без отображаемого имени
func parseEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: customerEmail is invalid: %w", ErrInvalidInput, err)
	}
	return addr.Address, nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(orderDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(orderDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(orderDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateOrderTime проверяет, что заказ не нарушает minBookingNoticeMinutes
func validateOrderTime(startsAt time.Time, now time.Time, minBookingNoticeMinutes int) error {
	minAllowed := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if startsAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly отбрасывает время, сохраняя календарную дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
