package get_branch_bookings

import (
	"context"

	"github.com/m04kA/SMC-ArrivalService/internal/service/bookings/models"
)

type BookingsService interface {
	GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
