package review

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review.repository: review not found")

	// ErrDuplicateReview возвращается при повторном отзыве на тот же заказ
	ErrDuplicateReview = errors.New("review.repository: review for this order already exists")

	ErrBuildQuery = errors.New("review.repository: failed to build query")
	ErrExecQuery  = errors.New("review.repository: failed to execute query")
	ErrScanRow    = errors.New("review.repository: failed to scan row")
)
