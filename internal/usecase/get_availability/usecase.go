package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-BeautyService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-BeautyService/pkg/ptr"
)

// UseCase use case для получения свободного времени специалиста на дату
type UseCase struct {
	specialistRepo SpecialistRepository
	businessRepo   BusinessRepository
	positionRepo   PositionRepository
	serviceRepo    ServiceRepository
	orderRepo      OrderRepository
	settings       SettingsResolver
	timeProvider   TimeProvider
	loc            *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// loc - часовой пояс, в котором заданы рабочие часы бизнесов
func NewUseCase(
	specialistRepo SpecialistRepository,
	businessRepo BusinessRepository,
	positionRepo PositionRepository,
	serviceRepo ServiceRepository,
	orderRepo OrderRepository,
	settings SettingsResolver,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		specialistRepo: specialistRepo,
		businessRepo:   businessRepo,
		positionRepo:   positionRepo,
		serviceRepo:    serviceRepo,
		orderRepo:      orderRepo,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		loc:            loc,
		logger:         logger,
	}
}

// Execute выполняет use case получения свободных интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: specialist=%d, date=%s", req.SpecialistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе бизнесов
	now := uc.timeProvider.Now().In(uc.loc)

	// 3. Получаем специалиста
	specialist, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("GetAvailability: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("GetAvailability: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %w", ErrInternal, err)
	}

	// 4. Получаем услугу, если она указана
	var service *domain.Service
	if req.ServiceID != nil {
		service, err = uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailability: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailability: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		if service.PositionID != specialist.PositionID {
			uc.logger.Warn("GetAvailability: service id=%d is not provided by specialist id=%d",
				service.ID, specialist.ID)
			return nil, ErrServiceNotFound
		}
	}

	// 5. Получаем настройки с учетом иерархии
	settings, err := uc.settings.Resolve(ctx, specialist.BusinessID, ptr.Ptr(specialist.PositionID))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve settings: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %w", ErrInternal, err)
	}

	// 6. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 7. Вычисляем рабочий интервал на этот день недели
	working, err := uc.workingInterval(ctx, specialist, req.Date)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:            req.Date,
		SpecialistID:    specialist.ID,
		WorkingInterval: working,
		FreeIntervals:   []domain.Interval{},
	}

	// 8. Отсекаем время, на которое записаться уже поздно
	bookable, ok := clipByNotice(working, req.Date, now, settings.MinBookingNoticeMinutes, uc.loc)
	if !ok {
		uc.logger.Info("GetAvailability: no bookable time left for specialist=%d on %s",
			specialist.ID, req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 9. Получаем заказы, занимающие время специалиста
	orders, err := uc.orderRepo.GetBlockingBySpecialistAndDate(ctx, specialist.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get orders: %v", err)
		return nil, fmt.Errorf("%w: failed to get orders: %w", ErrInternal, err)
	}

	// 10. Вычитаем занятые интервалы
	free := domain.FreeIntervals(bookable, domain.BusyIntervals(orders))
	if service != nil {
		free = dropShorterThan(free, service.DurationMinutes)
	}
	response.FreeIntervals = free

	uc.logger.Info("GetAvailability: found %d free intervals for specialist=%d on %s",
		len(free), specialist.ID, req.Date.Format(domain.DateFormat))

	return response, nil
}

// workingInterval возвращает рабочий интервал специалиста на дату
func (uc *UseCase) workingInterval(ctx context.Context, specialist *domain.Specialist, date time.Time) (domain.Interval, error) {
	businessHours, err := uc.businessRepo.GetWorkingHours(ctx, specialist.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get business hours: %v", err)
		return domain.Interval{}, fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
	}

	positionHours, err := uc.positionRepo.GetWorkingHours(ctx, specialist.PositionID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get position hours: %v", err)
		return domain.Interval{}, fmt.Errorf("%w: failed to get position hours: %w", ErrInternal, err)
	}

	working, ok := domain.EffectiveWorkingInterval(businessHours, positionHours, date.Weekday())
	if !ok {
		uc.logger.Info("GetAvailability: specialist=%d does not work on %s",
			specialist.ID, date.Format(domain.DateFormat))
		return domain.Interval{}, ErrBusinessClosed
	}

	return working, nil
}
