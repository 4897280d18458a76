package accept_booking

import (
	"time"

	acceptBooking "github.com/m04kA/SMC-ArrivalService/internal/usecase/accept_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64  `json:"id"`
	CustomerID         int64  `json:"customerId"`
	VehicleID          int64  `json:"vehicleId"`
	BranchID           int64  `json:"branchId"`
	ArrivalWindowStart string `json:"arrivalWindowStart"`
	WindowMinutes      int    `json:"windowMinutes"`
	Status             string `json:"status"`
	UpdatedAt          string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		CustomerID:         resp.CustomerID,
		VehicleID:          resp.VehicleID,
		BranchID:           resp.BranchID,
		ArrivalWindowStart: resp.ArrivalWindowStart.Format(time.RFC3339),
		WindowMinutes:      resp.WindowMinutes,
		Status:             resp.Status,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
