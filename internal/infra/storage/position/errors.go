package position

import "errors"

var (
	// ErrPositionNotFound возвращается, когда должность не найдена
	ErrPositionNotFound = errors.New("position.repository: position not found")

	// ErrDuplicatePosition возвращается при попытке создать должность с существующим именем
	ErrDuplicatePosition = errors.New("position.repository: position with this name already exists")

	ErrBuildQuery = errors.New("position.repository: failed to build query")
	ErrExecQuery  = errors.New("position.repository: failed to execute query")
	ErrScanRow    = errors.New("position.repository: failed to scan row")
)
