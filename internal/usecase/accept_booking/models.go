package accept_booking

import "time"

// Request модель запроса на подтверждение заявки
type Request struct {
	BookingID int64 // ID заявки
	StaffID   int64 // ID сотрудника филиала, подтверждающего заявку
}

// Response модель ответа с подтвержденной заявкой
type Response struct {
	ID                 int64     // ID заявки
	CustomerID         int64     // ID клиента
	VehicleID          int64     // ID автомобиля
	BranchID           int64     // ID филиала
	ArrivalWindowStart time.Time // Нормализованное начало окна прибытия
	WindowMinutes      int       // Размер окна в минутах
	Status             string    // Статус заявки
	AlreadyAccepted    bool      // true, если заявка уже была подтверждена ранее
	UpdatedAt          time.Time // Время обновления
}
