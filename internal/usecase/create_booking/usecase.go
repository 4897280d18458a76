package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/hours"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	branchClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	vehicleClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/vehicleservice"
	"github.com/m04kA/SMC-ArrivalService/pkg/ptr"
	"github.com/m04kA/SMC-ArrivalService/pkg/timewindow"
)

// UseCase use case для создания заявки на прибытие
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	guard         CapacityGuard
	branchClient  BranchServiceClient
	vehicleClient VehicleServiceClient
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	limits        domain.Limits
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	guard CapacityGuard,
	branchClient BranchServiceClient,
	vehicleClient VehicleServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	limits domain.Limits,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		guard:         guard,
		branchClient:  branchClient,
		vehicleClient: vehicleClient,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		limits:        limits,
		logger:        logger,
	}
}

// Execute выполняет use case создания заявки на прибытие
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, vehicle=%d, branch=%d, requestedTime=%s",
		req.CustomerID, req.VehicleID, req.BranchID, req.RequestedTime.Format("2006-01-02T15:04:05Z07:00"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем филиал
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("CreateBooking: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateBooking: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 4. Филиал должен принимать заявки
	if !branch.Active {
		uc.logger.Warn("CreateBooking: branch id=%d is inactive", req.BranchID)
		return nil, ErrBranchInactive
	}

	// 5. Получаем автомобиль и проверяем владельца
	vehicle, err := uc.vehicleClient.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleClient.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if vehicle.OwnerID != req.CustomerID {
		uc.logger.Warn("CreateBooking: vehicle id=%d is not owned by customer id=%d", req.VehicleID, req.CustomerID)
		return nil, ErrVehicleNotOwned
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию расписания филиала
		config, err := uc.scheduleRepo.GetByBranch(txCtx, req.BranchID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = &domain.BranchScheduleConfig{
				BranchID:      req.BranchID,
				WindowMinutes: domain.DefaultWindowMinutes,
				MaxPerWindow:  domain.DefaultMaxPerWindow,
				Active:        true,
			}
			uc.logger.Info("CreateBooking: using default schedule config for branch=%d", req.BranchID)
		}

		if !config.Active {
			uc.logger.Warn("CreateBooking: schedule config for branch id=%d is disabled", req.BranchID)
			return ErrBranchInactive
		}

		// 6.2. Нормализуем запрошенное время к началу окна
		windowMinutes := config.EffectiveWindowMinutes()
		windowStart, windowEnd := timewindow.Range(req.RequestedTime, windowMinutes)

		// Окно считается прошедшим, когда его конец уже наступил.
		// Окно, внутри которого находится текущий момент, еще допустимо.
		if !windowEnd.After(now) {
			uc.logger.Warn("CreateBooking: window [%s, %s) is in the past", windowStart, windowEnd)
			return ErrSlotInPast
		}

		// 6.3. Проверяем рабочие часы филиала в день окна
		operatingHour := branch.OperatingHourFor(windowStart.Weekday())
		if err := hours.EnsureWithinHours(operatingHour, windowStart, windowMinutes); err != nil {
			return mapHoursError(err)
		}

		// 6.4. Проверяем лимиты и вместимость
		if err := uc.runGuards(txCtx, req, windowStart); err != nil {
			return err
		}

		// 6.5. Создаем заявку с денормализацией данных автомобиля
		booking := &domain.Booking{
			VehicleID:          req.VehicleID,
			CustomerID:         req.CustomerID,
			BranchID:           req.BranchID,
			Description:        strings.TrimSpace(req.Description),
			RequestedTime:      req.RequestedTime,
			ArrivalWindowStart: windowStart,
			WindowMinutes:      windowMinutes,
			Status:             domain.StatusPending,
			ServiceIDs:         req.ServiceIDs,
			ImageURLs:          req.ImageURLs,
			VehiclePlate:       ptr.Ptr(vehicle.LicensePlate),
			VehicleModel:       ptr.Ptr(fmt.Sprintf("%s %s", vehicle.Brand, vehicle.Model)),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, window=%s",
		result.ID, result.ArrivalWindowStart)

	// 7. Публикуем событие о создании заявки
	uc.publisher.PublishBookingEvent(ctx, notifications.RKBookingCreated, notifications.BookingEvent{
		BookingID:          result.ID,
		CustomerID:         result.CustomerID,
		VehicleID:          result.VehicleID,
		BranchID:           result.BranchID,
		Status:             string(result.Status),
		ArrivalWindowStart: result.ArrivalWindowStart,
	})

	return toResponse(result), nil
}

// runGuards прогоняет все проверки лимитов для новой заявки
func (uc *UseCase) runGuards(ctx context.Context, req *Request, windowStart time.Time) error {
	checks := []func() error{
		func() error {
			return uc.guard.CheckActiveRequestCeiling(ctx, req.CustomerID, uc.limits.MaxActiveRequests)
		},
		func() error { return uc.guard.CheckVehicleSingleActive(ctx, req.VehicleID) },
		func() error { return uc.guard.CheckVehicleNotInRepair(ctx, req.VehicleID) },
		func() error {
			return uc.guard.CheckDailyVehicleCeiling(ctx, req.VehicleID, windowStart, uc.limits.MaxDailyPerVehicle)
		},
		func() error {
			return uc.guard.CheckDuplicateSlot(ctx, req.CustomerID, req.VehicleID, req.BranchID, windowStart)
		},
	}

	for _, check := range checks {
		if err := check(); err != nil {
			if errors.Is(err, capacity.ErrInternal) {
				uc.logger.Error("CreateBooking: guard check failed: %v", err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			uc.logger.Warn("CreateBooking: guard rejected request: %v", err)
			return err
		}
	}

	return nil
}

// mapHoursError переводит ошибки проверки рабочих часов в ошибки usecase
// Исходная ошибка hours оборачивается, а не заменяется: вызывающий может
// отличить ненастроенное расписание от выходного дня через errors.Is
func mapHoursError(err error) error {
	switch {
	case errors.Is(err, hours.ErrHoursNotConfigured), errors.Is(err, hours.ErrClosedThisDay):
		return fmt.Errorf("%w: %w", ErrBranchClosed, err)
	case errors.Is(err, hours.ErrOutsideOperatingHours):
		return fmt.Errorf("%w: %w", ErrOutsideOperatingHours, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// toResponse конвертирует доменную модель в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		VehicleID:          b.VehicleID,
		BranchID:           b.BranchID,
		RequestedTime:      b.RequestedTime,
		ArrivalWindowStart: b.ArrivalWindowStart,
		WindowMinutes:      b.WindowMinutes,
		Status:             string(b.Status),
		Description:        b.Description,
		ServiceIDs:         b.ServiceIDs,
		ImageURLs:          b.ImageURLs,
		VehiclePlate:       b.VehiclePlate,
		VehicleModel:       b.VehicleModel,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
