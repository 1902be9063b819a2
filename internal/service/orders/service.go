package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/business"
	orderRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/order"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/internal/service/orders/models"
)

// Service сервис заказов: чтение, переходы статусов и обработка отложенных задач
type Service struct {
	orderRepo      OrderRepository
	jobRepo        JobRepository
	specialistRepo SpecialistRepository
	businessRepo   BusinessRepository
	settings       SettingsResolver
	links          LinkVerifier
	notifier       Notifier
	publisher      EventPublisher
	metrics        Metrics
	txManager      TransactionManager
	timeProvider   TimeProvider
	loc            *time.Location
	logger         Logger
}

// NewService создает новый экземпляр сервиса заказов
// loc - часовой пояс, в котором заданы даты и время заказов
func NewService(
	orderRepo OrderRepository,
	jobRepo JobRepository,
	specialistRepo SpecialistRepository,
	businessRepo BusinessRepository,
	settings SettingsResolver,
	links LinkVerifier,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:      orderRepo,
		jobRepo:        jobRepo,
		specialistRepo: specialistRepo,
		businessRepo:   businessRepo,
		settings:       settings,
		links:          links,
		notifier:       notifier,
		publisher:      publisher,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		loc:            loc,
		logger:         logger,
	}
}

// GetByID получает заказ
// Доступно клиенту, специалисту заказа и владельцу бизнеса
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d by user=%d", id, userID)

	order, err := s.getOrder(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != userID {
		if _, err := s.checkStaff(ctx, "GetByID", order, userID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainOrder(order), nil
}

// GetCustomerOrders возвращает заказы клиента, опционально с фильтром по статусу
func (s *Service) GetCustomerOrders(ctx context.Context, req *models.GetCustomerOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetCustomerOrders: fetching orders of user=%d, status=%v", req.UserID, req.Status)

	filter := domain.OrdersFilter{CustomerID: &req.UserID}
	if req.Status != nil {
		if !domain.IsValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Statuses = []domain.OrderStatus{*req.Status}
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerOrders: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCustomerOrders - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetCustomerOrders: found %d orders for user=%d", len(orders), req.UserID)
	return models.FromDomainOrderList(orders), nil
}

// GetSpecialistOrders возвращает заказы специалиста, опционально за дату и с фильтром по статусу
// Доступно самому специалисту и владельцу бизнеса
func (s *Service) GetSpecialistOrders(ctx context.Context, req *models.GetSpecialistOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetSpecialistOrders: fetching orders of specialist=%d by user=%d", req.SpecialistID, req.UserID)

	specialist, err := s.getSpecialist(ctx, "GetSpecialistOrders", req.SpecialistID)
	if err != nil {
		return nil, err
	}
	if specialist.UserID != req.UserID {
		if err := s.checkOwner(ctx, "GetSpecialistOrders", specialist.BusinessID, req.UserID); err != nil {
			return nil, err
		}
	}

	filter := domain.OrdersFilter{SpecialistID: &req.SpecialistID, DateFrom: req.Date, DateTo: req.Date}
	if req.Status != nil {
		if !domain.IsValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Statuses = []domain.OrderStatus{*req.Status}
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetSpecialistOrders: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSpecialistOrders - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainOrderList(orders), nil
}

// Вспомогательные методы

func (s *Service) getOrder(ctx context.Context, op string, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", op, id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: failed to get order id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get order: %w", ErrInternal, op, err)
	}
	return order, nil
}

func (s *Service) getSpecialist(ctx context.Context, op string, id int64) (*domain.Specialist, error) {
	specialist, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("%s: specialist id=%d not found", op, id)
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("%s: failed to get specialist id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get specialist: %w", ErrInternal, op, err)
	}
	return specialist, nil
}

// checkOwner проверяет, что пользователь владелец бизнеса
func (s *Service) checkOwner(ctx context.Context, op string, businessID, userID int64) error {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%d not found", op, businessID)
			return ErrAccessDenied
		}
		s.logger.Error("%s: failed to get business id=%d: %v", op, businessID, err)
		return fmt.Errorf("%w: %s - failed to get business: %w", ErrInternal, op, err)
	}
	if !business.IsOwner(userID) {
		s.logger.Warn("%s: user=%d has no access to business=%d", op, userID, businessID)
		return ErrAccessDenied
	}
	return nil
}

// checkStaff проверяет, что пользователь специалист заказа или владелец бизнеса
// Возвращает специалиста заказа
func (s *Service) checkStaff(ctx context.Context, op string, order *domain.Order, userID int64) (*domain.Specialist, error) {
	specialist, err := s.getSpecialist(ctx, op, order.SpecialistID)
	if err != nil {
		return nil, err
	}
	if specialist.UserID == userID {
		return specialist, nil
	}
	if err := s.checkOwner(ctx, op, order.BusinessID, userID); err != nil {
		return nil, err
	}
	return specialist, nil
}
