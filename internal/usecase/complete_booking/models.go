package complete_booking

import "time"

// Request модель запроса на завершение заявки
// Завершение означает, что по заявке открыт ремонтный тикет
type Request struct {
	BookingID int64 // ID заявки
	StaffID   int64 // ID сотрудника филиала, завершающего заявку
}

// Response модель ответа с завершенной заявкой
type Response struct {
	ID         int64     // ID заявки
	CustomerID int64     // ID клиента
	VehicleID  int64     // ID автомобиля
	BranchID   int64     // ID филиала
	Status     string    // Статус заявки
	UpdatedAt  time.Time // Время обновления
}
