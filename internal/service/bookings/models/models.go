package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение заявок клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetBranchBookingsRequest запрос на получение заявок филиала
type GetBranchBookingsRequest struct {
	UserID          int64      `json:"userId"`
	BranchID        int64      `json:"branchId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeTerminal bool       `json:"includeTerminal,omitempty"` // Включить завершенные и отмененные заявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchBookingsRequest) ToDomainFilter() (domain.BranchBookingsFilter, error) {
	filter := domain.BranchBookingsFilter{
		BranchID:        r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeTerminal: r.IncludeTerminal,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными заявки на прибытие
type BookingResponse struct {
	ID                 int64     `json:"id"`
	CustomerID         int64     `json:"customerId"`
	VehicleID          int64     `json:"vehicleId"`
	BranchID           int64     `json:"branchId"`
	Description        string    `json:"description"`
	RequestedTime      time.Time `json:"requestedTime"`
	ArrivalWindowStart time.Time `json:"arrivalWindowStart"`
	WindowMinutes      int       `json:"windowMinutes"`
	Status             string    `json:"status"`
	ServiceIDs         []int64   `json:"serviceIds,omitempty"`
	ImageURLs          []string  `json:"imageUrls,omitempty"`

	// Денормализованные данные автомобиля
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
	VehicleModel *string `json:"vehicleModel,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *int64     `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		VehicleID:          b.VehicleID,
		BranchID:           b.BranchID,
		Description:        b.Description,
		RequestedTime:      b.RequestedTime,
		ArrivalWindowStart: b.ArrivalWindowStart,
		WindowMinutes:      b.WindowMinutes,
		Status:             string(b.Status),
		ServiceIDs:         b.ServiceIDs,
		ImageURLs:          b.ImageURLs,
		VehiclePlate:       b.VehiclePlate,
		VehicleModel:       b.VehicleModel,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
