package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	reviewRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/review"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews/models"
	"github.com/m04kA/SMC-BeautyService/pkg/logger"
)

type fakeReviewRepo struct {
	reviews map[int64]*domain.Review
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	review.ID = int64(len(r.reviews) + 1)
	r.reviews[review.ID] = review
	return review, nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, reviewRepo.ErrReviewNotFound
	}
	return review, nil
}

func (r *fakeReviewRepo) ExistsForOrder(_ context.Context, orderID int64) (bool, error) {
	for _, review := range r.reviews {
		if review.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByBusiness(_ context.Context, _ int64, _, _ uint64) ([]*domain.Review, error) {
	result := make([]*domain.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		result = append(result, review)
	}
	return result, nil
}

func (r *fakeReviewRepo) SummaryByBusiness(_ context.Context, _ int64) (*domain.ReviewSummary, error) {
	summary := &domain.ReviewSummary{Count: len(r.reviews)}
	total := 0
	for _, review := range r.reviews {
		total += review.Rating
	}
	if summary.Count > 0 {
		summary.AverageRating = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	delete(r.reviews, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[int64]*domain.Order
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return o, nil
}

type fakeBusinessRepo struct{}

func (fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1}, nil
}

func newTestService() (*Service, *fakeReviewRepo) {
	reviews := &fakeReviewRepo{reviews: map[int64]*domain.Review{}}
	orders := &fakeOrderRepo{orders: map[int64]*domain.Order{
		1: {ID: 1, BusinessID: 1, SpecialistID: 5, CustomerID: 100, Status: domain.StatusCompleted},
		2: {ID: 2, BusinessID: 1, SpecialistID: 5, CustomerID: 100, Status: domain.StatusApproved},
		3: {ID: 3, BusinessID: 2, SpecialistID: 6, CustomerID: 100, Status: domain.StatusCompleted},
	}}
	return NewService(reviews, orders, fakeBusinessRepo{}, logger.NewNop()), reviews
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()
	comment := " Great! "

	resp, err := svc.Create(context.Background(), &models.CreateReviewRequest{
		UserID: 100, BusinessID: 1, OrderID: 1, Rating: 5, Comment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.SpecialistID)
	assert.Equal(t, "Great!", *resp.Comment)

	_, err = svc.Create(context.Background(), &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 1, Rating: 4})
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateReviewRequest
		wantErr error
	}{
		{"rating too high", &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 1, Rating: 6}, ErrInvalidInput},
		{"rating zero", &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 1}, ErrInvalidInput},
		{"order not completed", &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 2, Rating: 3}, ErrOrderNotCompleted},
		{"foreign order", &models.CreateReviewRequest{UserID: 101, BusinessID: 1, OrderID: 1, Rating: 3}, ErrAccessDenied},
		{"other business", &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 3, Rating: 3}, ErrOrderNotFound},
		{"missing order", &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 9, Rating: 3}, ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListByBusiness(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 1, Rating: 4})
	require.NoError(t, err)

	resp, err := svc.ListByBusiness(context.Background(), &models.ListReviewsRequest{BusinessID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.InDelta(t, 4.0, resp.AverageRating, 0.001)
	assert.Len(t, resp.Reviews, 1)

	_, err = svc.ListByBusiness(context.Background(), &models.ListReviewsRequest{BusinessID: 2})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestDelete_OnlyAuthor(t *testing.T) {
	svc, reviews := newTestService()
	created, err := svc.Create(context.Background(), &models.CreateReviewRequest{UserID: 100, BusinessID: 1, OrderID: 1, Rating: 4})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 101), ErrAccessDenied)
	require.NoError(t, svc.Delete(context.Background(), created.ID, 100))
	assert.Empty(t, reviews.reviews)
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 100), ErrReviewNotFound)
}
