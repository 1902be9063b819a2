package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	UserID     int64   `json:"-"`
	BusinessID int64   `json:"-"`
	OrderID    int64   `json:"orderId"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment,omitempty"`
}

// ListReviewsRequest запрос на получение отзывов бизнеса
type ListReviewsRequest struct {
	BusinessID int64
	Limit      uint64
	Offset     uint64
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID           int64     `json:"id"`
	BusinessID   int64     `json:"businessId"`
	SpecialistID int64     `json:"specialistId"`
	OrderID      int64     `json:"orderId"`
	CustomerID   int64     `json:"customerId"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов и сводкой рейтинга
type ReviewListResponse struct {
	AverageRating float64          `json:"averageRating"`
	Count         int              `json:"count"`
	Reviews       []ReviewResponse `json:"reviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:           r.ID,
		BusinessID:   r.BusinessID,
		SpecialistID: r.SpecialistID,
		OrderID:      r.OrderID,
		CustomerID:   r.CustomerID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует отзывы и сводку в DTO
func FromDomainReviewList(reviews []*domain.Review, summary *domain.ReviewSummary) *ReviewListResponse {
	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}
	if summary != nil {
		resp.AverageRating = summary.AverageRating
		resp.Count = summary.Count
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}
	return resp
}
