package job

import "errors"

var (
	// ErrJobNotFound возвращается, когда задача не найдена
	ErrJobNotFound = errors.New("job.repository: job not found")

	ErrBuildQuery = errors.New("job.repository: failed to build query")
	ErrExecQuery  = errors.New("job.repository: failed to execute query")
	ErrScanRow    = errors.New("job.repository: failed to scan row")
)
