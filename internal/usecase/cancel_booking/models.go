package cancel_booking

import "time"

// Request модель запроса на отмену заявки
type Request struct {
	BookingID int64   // ID заявки
	ActorID   int64   // ID пользователя, выполняющего отмену
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с отмененной заявкой
type Response struct {
	ID          int64     // ID заявки
	CustomerID  int64     // ID клиента
	VehicleID   int64     // ID автомобиля
	BranchID    int64     // ID филиала
	Status      string    // Статус заявки
	CancelledBy int64     // Кто отменил заявку
	Reason      *string   // Причина отмены
	UpdatedAt   time.Time // Время обновления
}
