package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
)

// UseCase use case для отметки прибытия клиента в филиал
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	guard        CapacityGuard
	publisher    EventPublisher
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	guard CapacityGuard,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		guard:        guard,
		publisher:    publisher,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case отметки прибытия
// Лимит загрузки цеха проверяется только если он включен в конфигурации филиала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: booking=%d, staff=%d", req.BookingID, req.StaffID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.Booking
	alreadyArrived := false

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Повторная отметка прибытия - no-op
		if booking.Status == domain.StatusArrived {
			result = booking
			alreadyArrived = true
			return nil
		}

		if !booking.Status.CanTransitionTo(domain.StatusArrived) {
			uc.logger.Warn("CheckIn: booking id=%d cannot be checked in from status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: cannot check in booking in status %s", ErrInvalidStateTransition, booking.Status)
		}

		// Проверяем загрузку цеха, если лимит включен
		config, err := uc.scheduleRepo.GetByBranch(txCtx, booking.BranchID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("CheckIn: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		if config != nil && config.WipEnforced() {
			if err := uc.guard.CheckWipCapacity(txCtx, booking.BranchID, config.MaxWip); err != nil {
				if errors.Is(err, capacity.ErrInternal) {
					uc.logger.Error("CheckIn: wip capacity check failed: %v", err)
					return fmt.Errorf("%w: %v", ErrInternal, err)
				}
				uc.logger.Warn("CheckIn: branch id=%d workshop is full", booking.BranchID)
				return err
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusArrived); err != nil {
			uc.logger.Error("CheckIn: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusArrived
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyArrived {
		uc.logger.Info("CheckIn: booking id=%d marked as arrived", result.ID)

		uc.publisher.PublishBookingEvent(ctx, notifications.RKBookingArrived, notifications.BookingEvent{
			BookingID:          result.ID,
			CustomerID:         result.CustomerID,
			VehicleID:          result.VehicleID,
			BranchID:           result.BranchID,
			Status:             string(result.Status),
			ArrivalWindowStart: result.ArrivalWindowStart,
		})
	}

	return &Response{
		ID:             result.ID,
		CustomerID:     result.CustomerID,
		VehicleID:      result.VehicleID,
		BranchID:       result.BranchID,
		Status:         string(result.Status),
		AlreadyArrived: alreadyArrived,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
