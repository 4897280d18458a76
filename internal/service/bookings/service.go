package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArrivalService/internal/service/bookings/models"
)

// Service сервис для чтения заявок на прибытие
type Service struct {
	bookingRepo    BookingRepository
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	bookingRepo BookingRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// GetByID получает заявку по ID
// Пользователь может видеть только свою заявку,
// сотрудник филиала - любую заявку своего филиала
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю заявок клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBranchBookings получает заявки филиала с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению завершенных заявок
// Доступно только сотрудникам филиала
func (s *Service) GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBranchBookings: fetching bookings for branch=%d, user=%d", req.BranchID, req.UserID)

	if err := s.checkStaffAccess(ctx, req.BranchID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBranchBookings: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchBookings: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchBookings: successfully fetched %d bookings for branch=%d", len(bookings), req.BranchID)
	return models.FromDomainBookingList(bookings), nil
}

// checkUserAccess проверяет, что пользователь владелец заявки или сотрудник филиала
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.CustomerID == userID {
		return nil
	}
	return s.checkStaffAccess(ctx, booking.BranchID, userID)
}

// checkStaffAccess проверяет, что пользователь является сотрудником филиала
func (s *Service) checkStaffAccess(ctx context.Context, branchID, userID int64) error {
	isStaff, err := s.identityClient.IsBranchStaff(ctx, userID, branchID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to check staff access for user=%d, branch=%d: %v", userID, branchID, err)
		return fmt.Errorf("%w: failed to check access: %v", ErrInternal, err)
	}
	if !isStaff {
		s.logger.Warn("checkStaffAccess: user=%d is not staff of branch=%d", userID, branchID)
		return ErrAccessDenied
	}
	return nil
}
