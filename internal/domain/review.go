package domain

import "time"

// Review отзыв клиента о выполненном заказе
type Review struct {
	ID           int64
	BusinessID   int64
	SpecialistID int64
	OrderID      int64
	CustomerID   int64
	Rating       int
	Comment      *string
	CreatedAt    time.Time
}

// ReviewSummary агрегированный рейтинг бизнеса
type ReviewSummary struct {
	AverageRating float64
	Count         int
}
