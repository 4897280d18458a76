package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
)

// UseCase use case для завершения заявки при открытии ремонтного тикета
type UseCase struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case завершения заявки
// Заявка завершается ровно один раз: повторный вызов возвращает ошибку,
// чтобы не открыть второй ремонтный тикет по той же заявке.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: booking=%d, staff=%d", req.BookingID, req.StaffID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CompleteBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.Status.CanTransitionTo(domain.StatusCompleted) {
			uc.logger.Warn("CompleteBooking: booking id=%d cannot be completed from status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: cannot complete booking in status %s", ErrInvalidStateTransition, booking.Status)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCompleted); err != nil {
			uc.logger.Error("CompleteBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCompleted
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteBooking: booking id=%d completed", result.ID)

	uc.publisher.PublishBookingEvent(ctx, notifications.RKBookingCompleted, notifications.BookingEvent{
		BookingID:          result.ID,
		CustomerID:         result.CustomerID,
		VehicleID:          result.VehicleID,
		BranchID:           result.BranchID,
		Status:             string(result.Status),
		ArrivalWindowStart: result.ArrivalWindowStart,
	})

	return &Response{
		ID:         result.ID,
		CustomerID: result.CustomerID,
		VehicleID:  result.VehicleID,
		BranchID:   result.BranchID,
		Status:     string(result.Status),
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
