package check_in

import "time"

// Request модель запроса на отметку прибытия клиента
type Request struct {
	BookingID int64 // ID заявки
	StaffID   int64 // ID сотрудника филиала, отмечающего прибытие
}

// Response модель ответа после отметки прибытия
type Response struct {
	ID             int64     // ID заявки
	CustomerID     int64     // ID клиента
	VehicleID      int64     // ID автомобиля
	BranchID       int64     // ID филиала
	Status         string    // Статус заявки
	AlreadyArrived bool      // true, если прибытие уже было отмечено ранее
	UpdatedAt      time.Time // Время обновления
}
