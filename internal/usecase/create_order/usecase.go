package create_order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-BeautyService/pkg/ptr"
)

// UseCase use case для создания заказа
type UseCase struct {
	orderRepo      OrderRepository
	jobRepo        JobRepository
	specialistRepo SpecialistRepository
	businessRepo   BusinessRepository
	positionRepo   PositionRepository
	serviceRepo    ServiceRepository
	settings       SettingsResolver
	notifier       Notifier
	publisher      EventPublisher
	metrics        Metrics
	txManager      TransactionManager
	timeProvider   TimeProvider
	loc            *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	jobRepo JobRepository,
	specialistRepo SpecialistRepository,
	businessRepo BusinessRepository,
	positionRepo PositionRepository,
	serviceRepo ServiceRepository,
	settings SettingsResolver,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:      orderRepo,
		jobRepo:        jobRepo,
		specialistRepo: specialistRepo,
		businessRepo:   businessRepo,
		positionRepo:   positionRepo,
		serviceRepo:    serviceRepo,
		settings:       settings,
		notifier:       notifier,
		publisher:      publisher,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		loc:            loc,
		logger:         logger,
	}
}

// Execute выполняет use case создания заказа
// Проверка занятости и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: customer=%d, specialist=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.SpecialistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе бизнесов
	now := uc.timeProvider.Now().In(uc.loc)

	// 3. Получаем специалиста
	specialist, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateOrder: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateOrder: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %w", ErrInternal, err)
	}

	// 4. Получаем услугу и проверяем, что её оказывает должность специалиста
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateOrder: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateOrder: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if service.PositionID != specialist.PositionID {
		uc.logger.Warn("CreateOrder: service id=%d is not provided by specialist id=%d", service.ID, specialist.ID)
		return nil, ErrServiceNotProvided
	}

	// 5. Получаем настройки с учетом иерархии
	settings, err := uc.settings.Resolve(ctx, specialist.BusinessID, ptr.Ptr(specialist.PositionID))
	if err != nil {
		uc.logger.Error("CreateOrder: failed to resolve settings: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %w", ErrInternal, err)
	}

	// 6. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateOrder: date validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем, что заказ целиком попадает в рабочие часы
	working, err := uc.workingInterval(ctx, specialist, req.Date)
	if err != nil {
		return nil, err
	}

	requested, err := orderInterval(req.StartTime, service.DurationMinutes)
	if err != nil || !working.Contains(requested) {
		uc.logger.Warn("CreateOrder: %s+%dm is outside working hours %s-%s",
			req.StartTime, service.DurationMinutes, working.Start, working.End)
		return nil, ErrInvalidTimeSlot
	}

	// 8. Проверяем минимальное время до начала
	startsAt := req.StartTime.On(req.Date, uc.loc)
	if err := validateOrderTime(startsAt, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateOrder: order time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Order

	// 9. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Получаем заказы специалиста на дату с блокировкой (FOR UPDATE)
		orders, err := uc.orderRepo.GetBlockingBySpecialistAndDate(txCtx, specialist.ID, req.Date)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to get orders: %v", err)
			return fmt.Errorf("%w: failed to get orders: %w", ErrInternal, err)
		}

		// 9.2. Проверяем, что время свободно
		if !fitsFreeInterval(working, domain.BusyIntervals(orders), requested) {
			uc.logger.Warn("CreateOrder: time %s-%s is already taken for specialist=%d",
				requested.Start, requested.End, specialist.ID)
			return ErrSlotNotAvailable
		}

		// 9.3. Создаем заказ с денормализацией данных услуги
		order := &domain.Order{
			BusinessID:      specialist.BusinessID,
			SpecialistID:    specialist.ID,
			ServiceID:       service.ID,
			CustomerID:      req.CustomerID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   req.CustomerEmail,
			OrderDate:       dateOnly(req.Date),
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusActive,
			ServiceName:     service.Name,
			Price:           service.Price,
			Comment:         req.Comment,
		}

		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %w", ErrInternal, err)
		}

		// 9.4. Планируем автоматическое отклонение неподтверждённого заказа
		declineAt := now.Add(settings.ApprovalTimeout())
		if startsAt.Before(declineAt) {
			declineAt = startsAt
		}
		if err := uc.jobRepo.Schedule(txCtx, created.ID, domain.JobDeclineTimeout, declineAt); err != nil {
			uc.logger.Error("CreateOrder: failed to schedule decline timeout for order id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to schedule decline timeout: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateOrder: successfully created order id=%d", result.ID)

	// 10. Побочные эффекты после коммита
	uc.metrics.ObserveTransition(string(domain.StatusActive))

	if err := uc.notifier.OrderCreated(ctx, result, specialist, settings.ApprovalTimeout()); err != nil {
		uc.logger.Warn("CreateOrder: failed to notify about order id=%d: %v", result.ID, err)
	}

	if err := uc.publisher.PublishOrderEvent(ctx, eventbus.NewOrderEvent(result, "")); err != nil {
		uc.logger.Warn("CreateOrder: failed to publish event for order id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:              result.ID,
		BusinessID:      result.BusinessID,
		SpecialistID:    result.SpecialistID,
		ServiceID:       result.ServiceID,
		CustomerID:      result.CustomerID,
		OrderDate:       result.OrderDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		Price:           result.Price,
		Comment:         result.Comment,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// workingInterval возвращает рабочий интервал специалиста на дату
func (uc *UseCase) workingInterval(ctx context.Context, specialist *domain.Specialist, date time.Time) (domain.Interval, error) {
	businessHours, err := uc.businessRepo.GetWorkingHours(ctx, specialist.BusinessID)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to get business hours: %v", err)
		return domain.Interval{}, fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
	}

	positionHours, err := uc.positionRepo.GetWorkingHours(ctx, specialist.PositionID)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to get position hours: %v", err)
		return domain.Interval{}, fmt.Errorf("%w: failed to get position hours: %w", ErrInternal, err)
	}

	working, ok := domain.EffectiveWorkingInterval(businessHours, positionHours, date.Weekday())
	if !ok {
		uc.logger.Warn("CreateOrder: specialist=%d does not work on %s", specialist.ID, date.Format(domain.DateFormat))
		return domain.Interval{}, ErrBusinessClosed
	}

	return working, nil
}
