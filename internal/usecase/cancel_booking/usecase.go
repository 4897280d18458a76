package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
)

// UseCase use case для отмены заявки на прибытие
type UseCase struct {
	bookingRepo    BookingRepository
	identityClient IdentityServiceClient
	publisher      EventPublisher
	txManager      TransactionManager
	timeProvider   TimeProvider
	limits         domain.Limits
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	identityClient IdentityServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	limits domain.Limits,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		publisher:      publisher,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		limits:         limits,
		logger:         logger,
	}
}

// Execute выполняет use case отмены заявки
// Клиент может отменить заявку не позднее чем за cancellationCutoffMinutes
// до начала окна прибытия. На сотрудников филиала отсечка не распространяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d", req.BookingID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 1. Предварительное чтение для проверки прав доступа
	preview, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	isOwner := preview.CustomerID == req.ActorID
	if !isOwner {
		isStaff, err := uc.identityClient.IsBranchStaff(ctx, req.ActorID, preview.BranchID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to check staff access for user id=%d: %v", req.ActorID, err)
			return nil, fmt.Errorf("%w: failed to check access: %v", ErrInternal, err)
		}
		if !isStaff {
			uc.logger.Warn("CancelBooking: user id=%d has no access to booking id=%d", req.ActorID, req.BookingID)
			return nil, ErrAccessDenied
		}
	}

	var result *domain.Booking

	// 2. Отменяем заявку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if booking.Status == domain.StatusCancelled {
			uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
			return ErrAlreadyCancelled
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled from status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: cannot cancel booking in status %s", ErrInvalidStateTransition, booking.Status)
		}

		// Отсечка по времени действует только на владельца заявки
		if isOwner {
			cutoff := time.Duration(uc.limits.CancellationCutoffMinutes) * time.Minute
			deadline := booking.ArrivalWindowStart.Add(-cutoff)
			if now.After(deadline) {
				uc.logger.Warn("CancelBooking: booking id=%d past cancellation deadline %s", req.BookingID, deadline)
				return ErrTooLateToCancel
			}
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.ActorID, req.Reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledBy = &req.ActorID
		booking.CancellationReason = req.Reason
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled by user id=%d", result.ID, req.ActorID)

	uc.publisher.PublishBookingEvent(ctx, notifications.RKBookingCancelled, notifications.BookingEvent{
		BookingID:          result.ID,
		CustomerID:         result.CustomerID,
		VehicleID:          result.VehicleID,
		BranchID:           result.BranchID,
		Status:             string(result.Status),
		ArrivalWindowStart: result.ArrivalWindowStart,
	})

	return &Response{
		ID:          result.ID,
		CustomerID:  result.CustomerID,
		VehicleID:   result.VehicleID,
		BranchID:    result.BranchID,
		Status:      string(result.Status),
		CancelledBy: req.ActorID,
		Reason:      req.Reason,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// getBooking читает заявку и переводит ошибки репозитория в ошибки usecase
func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}
