package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	reviewRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/review"
	"github.com/m04kA/SMC-BeautyService/internal/service/reviews/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service сервис отзывов
type Service struct {
	reviewRepo   ReviewRepository
	orderRepo    OrderRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, orderRepo OrderRepository, businessRepo BusinessRepository, logger Logger) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// Create создает отзыв на завершённый заказ
// Оставить отзыв может только клиент заказа, один раз на заказ
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: creating review for order=%d in business=%d by user=%d", req.OrderID, req.BusinessID, req.UserID)

	// 1. Валидируем входные данные
	comment, err := validateReview(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем заказ и проверяем, что он принадлежит пользователю и бизнесу
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("Create: order id=%d not found", req.OrderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Create: failed to get order id=%d: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: Create - failed to get order: %w", ErrInternal, err)
	}
	if order.BusinessID != req.BusinessID {
		s.logger.Warn("Create: order id=%d belongs to business=%d", order.ID, order.BusinessID)
		return nil, ErrOrderNotFound
	}
	if order.CustomerID != req.UserID {
		s.logger.Warn("Create: user=%d is not a customer of order id=%d", req.UserID, order.ID)
		return nil, ErrAccessDenied
	}

	// 3. Отзыв возможен только на завершённый заказ
	if order.Status != domain.StatusCompleted {
		s.logger.Warn("Create: order id=%d is %s", order.ID, order.Status)
		return nil, ErrOrderNotCompleted
	}

	// 4. Проверяем, что отзыва ещё нет
	exists, err := s.reviewRepo.ExistsForOrder(ctx, order.ID)
	if err != nil {
		s.logger.Error("Create: failed to check existing review: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Create: review for order id=%d already exists", order.ID)
		return nil, ErrReviewAlreadyExists
	}

	// 5. Создаем отзыв
	created, err := s.reviewRepo.Create(ctx, &domain.Review{
		BusinessID:   order.BusinessID,
		SpecialistID: order.SpecialistID,
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		Rating:       req.Rating,
		Comment:      comment,
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicateReview) {
			return nil, ErrReviewAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created review id=%d", created.ID)
	return models.FromDomainReview(created), nil
}

// ListByBusiness возвращает отзывы бизнеса со средним рейтингом
// Публичный метод - доступен всем
func (s *Service) ListByBusiness(ctx context.Context, req *models.ListReviewsRequest) (*models.ReviewListResponse, error) {
	if _, err := s.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("ListByBusiness: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListByBusiness: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - failed to get business: %w", ErrInternal, err)
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	reviews, err := s.reviewRepo.ListByBusiness(ctx, req.BusinessID, limit, req.Offset)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %w", ErrInternal, err)
	}

	summary, err := s.reviewRepo.SummaryByBusiness(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("ListByBusiness: failed to get summary: %v", err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews, summary), nil
}

// Delete удаляет отзыв
// Доступно только автору отзыва
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	s.logger.Info("Delete: deleting review id=%d by user=%d", id, userID)

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("Delete: review id=%d not found", id)
			return ErrReviewNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	if review.CustomerID != userID {
		s.logger.Warn("Delete: user=%d is not an author of review id=%d", userID, id)
		return ErrAccessDenied
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted review id=%d", id)
	return nil
}

func validateReview(req *models.CreateReviewRequest) (*string, error) {
	if req.OrderID <= 0 {
		return nil, fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment == nil {
		return nil, nil
	}

	comment := strings.TrimSpace(*req.Comment)
	if comment == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	return &comment, nil
}
