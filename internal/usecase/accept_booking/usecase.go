package accept_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/hours"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	branchClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	"github.com/m04kA/SMC-ArrivalService/pkg/timewindow"
)

// UseCase use case для подтверждения заявки станцией
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	guard        CapacityGuard
	branchClient BranchServiceClient
	publisher    EventPublisher
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	guard CapacityGuard,
	branchClient BranchServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		guard:        guard,
		branchClient: branchClient,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения заявки
// Окно прибытия нормализуется заново: конфигурация филиала могла
// измениться между созданием и подтверждением заявки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptBooking: booking=%d, staff=%d", req.BookingID, req.StaffID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	// 1. Предварительное чтение, чтобы узнать филиал заявки
	preview, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Повторное подтверждение - no-op
	if preview.Status == domain.StatusAccepted {
		uc.logger.Info("AcceptBooking: booking id=%d is already accepted", req.BookingID)
		return toResponse(preview, true), nil
	}

	if !preview.Status.CanTransitionTo(domain.StatusAccepted) {
		uc.logger.Warn("AcceptBooking: booking id=%d cannot be accepted from status %s", req.BookingID, preview.Status)
		return nil, fmt.Errorf("%w: cannot accept booking in status %s", ErrInvalidStateTransition, preview.Status)
	}

	// 2. Получаем филиал (удаленный вызов вне транзакции)
	branch, err := uc.branchClient.GetBranch(ctx, preview.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("AcceptBooking: branch id=%d not found", preview.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("AcceptBooking: failed to get branch id=%d: %v", preview.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	var result *domain.Booking
	alreadyAccepted := false

	// 3. Подтверждаем заявку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Перечитываем заявку с блокировкой
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if booking.Status == domain.StatusAccepted {
			result = booking
			alreadyAccepted = true
			return nil
		}

		if !booking.Status.CanTransitionTo(domain.StatusAccepted) {
			return fmt.Errorf("%w: cannot accept booking in status %s", ErrInvalidStateTransition, booking.Status)
		}

		// 3.2. Получаем актуальную конфигурацию расписания
		config, err := uc.scheduleRepo.GetByBranch(txCtx, booking.BranchID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("AcceptBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		if config == nil {
			config = &domain.BranchScheduleConfig{
				BranchID:      booking.BranchID,
				WindowMinutes: domain.DefaultWindowMinutes,
				MaxPerWindow:  domain.DefaultMaxPerWindow,
				Active:        true,
			}
		}

		// 3.3. Нормализуем окно по актуальному размеру
		windowMinutes := config.EffectiveWindowMinutes()
		windowStart := timewindow.Quantize(booking.ArrivalWindowStart, windowMinutes)

		// 3.4. Окно должно попадать в рабочие часы филиала
		operatingHour := branch.OperatingHourFor(windowStart.Weekday())
		if err := hours.EnsureWithinHours(operatingHour, windowStart, windowMinutes); err != nil {
			return mapHoursError(err)
		}

		// 3.5. Проверяем вместимость окна среди подтвержденных заявок
		if err := uc.guard.CheckWindowCapacity(txCtx, booking.BranchID, windowStart, config.MaxPerWindow); err != nil {
			if errors.Is(err, capacity.ErrInternal) {
				uc.logger.Error("AcceptBooking: window capacity check failed: %v", err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			uc.logger.Warn("AcceptBooking: window %s for branch id=%d is full", windowStart, booking.BranchID)
			return err
		}

		// 3.6. Переводим заявку в Accepted с обновленным окном
		if err := uc.bookingRepo.UpdateStatusAndWindow(txCtx, booking.ID, domain.StatusAccepted, windowStart, windowMinutes); err != nil {
			uc.logger.Error("AcceptBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusAccepted
		booking.ArrivalWindowStart = windowStart
		booking.WindowMinutes = windowMinutes
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyAccepted {
		uc.logger.Info("AcceptBooking: booking id=%d accepted, window=%s", result.ID, result.ArrivalWindowStart)

		uc.publisher.PublishBookingEvent(ctx, notifications.RKBookingAccepted, notifications.BookingEvent{
			BookingID:          result.ID,
			CustomerID:         result.CustomerID,
			VehicleID:          result.VehicleID,
			BranchID:           result.BranchID,
			Status:             string(result.Status),
			ArrivalWindowStart: result.ArrivalWindowStart,
		})
	}

	return toResponse(result, alreadyAccepted), nil
}

// getBooking читает заявку и переводит ошибки репозитория в ошибки usecase
func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AcceptBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AcceptBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
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

func toResponse(b *domain.Booking, alreadyAccepted bool) *Response {
	return &Response{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		VehicleID:          b.VehicleID,
		BranchID:           b.BranchID,
		ArrivalWindowStart: b.ArrivalWindowStart,
		WindowMinutes:      b.WindowMinutes,
		Status:             string(b.Status),
		AlreadyAccepted:    alreadyAccepted,
		UpdatedAt:          b.UpdatedAt,
	}
}
