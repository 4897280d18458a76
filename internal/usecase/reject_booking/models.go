package reject_booking

import "time"

// Request модель запроса на отклонение заявки
type Request struct {
	BookingID int64 // ID заявки
	StaffID   int64 // ID сотрудника филиала, отклоняющего заявку
}

// Response модель ответа с отклоненной заявкой
type Response struct {
	ID              int64     // ID заявки
	CustomerID      int64     // ID клиента
	VehicleID       int64     // ID автомобиля
	BranchID        int64     // ID филиала
	Status          string    // Статус заявки
	AlreadyRejected bool      // true, если заявка уже была отклонена ранее
	UpdatedAt       time.Time // Время обновления
}
