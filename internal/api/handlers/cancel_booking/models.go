package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-ArrivalService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelResponse HTTP response model
type CancelResponse struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	CancelledBy int64   `json:"cancelledBy"`
	Reason      *string `json:"reason,omitempty"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelResponse {
	return &CancelResponse{
		ID:          resp.ID,
		Status:      resp.Status,
		CancelledBy: resp.CancelledBy,
		Reason:      resp.Reason,
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
