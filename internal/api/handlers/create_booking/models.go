package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ArrivalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VehicleID     int64    `json:"vehicleId"`
	BranchID      int64    `json:"branchId"`
	RequestedTime string   `json:"requestedTime"` // RFC 3339, например "2026-09-02T10:17:00+03:00"
	Description   string   `json:"description"`
	ServiceIDs    []int64  `json:"serviceIds,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64    `json:"id"`
	CustomerID         int64    `json:"customerId"`
	VehicleID          int64    `json:"vehicleId"`
	BranchID           int64    `json:"branchId"`
	RequestedTime      string   `json:"requestedTime"`
	ArrivalWindowStart string   `json:"arrivalWindowStart"`
	WindowMinutes      int      `json:"windowMinutes"`
	Status             string   `json:"status"`
	Description        string   `json:"description"`
	ServiceIDs         []int64  `json:"serviceIds,omitempty"`
	ImageURLs          []string `json:"imageUrls,omitempty"`
	VehiclePlate       *string  `json:"vehiclePlate,omitempty"`
	VehicleModel       *string  `json:"vehicleModel,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	requestedTime, err := time.Parse(time.RFC3339, r.RequestedTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:    customerID,
		VehicleID:     r.VehicleID,
		BranchID:      r.BranchID,
		RequestedTime: requestedTime,
		Description:   r.Description,
		ServiceIDs:    r.ServiceIDs,
		ImageURLs:     r.ImageURLs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		CustomerID:         resp.CustomerID,
		VehicleID:          resp.VehicleID,
		BranchID:           resp.BranchID,
		RequestedTime:      resp.RequestedTime.Format(time.RFC3339),
		ArrivalWindowStart: resp.ArrivalWindowStart.Format(time.RFC3339),
		WindowMinutes:      resp.WindowMinutes,
		Status:             resp.Status,
		Description:        resp.Description,
		ServiceIDs:         resp.ServiceIDs,
		ImageURLs:          resp.ImageURLs,
		VehiclePlate:       resp.VehiclePlate,
		VehicleModel:       resp.VehicleModel,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
