package specialist

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist.repository: specialist not found")

	// ErrDuplicateSpecialist возвращается, когда пользователь уже числится в должности
	ErrDuplicateSpecialist = errors.New("specialist.repository: user is already a specialist of this position")

	ErrBuildQuery = errors.New("specialist.repository: failed to build query")
	ErrExecQuery  = errors.New("specialist.repository: failed to execute query")
	ErrScanRow    = errors.New("specialist.repository: failed to scan row")
)
