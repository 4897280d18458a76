package domain

import "time"

// Booking represents a repair-shop arrival booking (заявка на приезд)
type Booking struct {
	ID          int64
	VehicleID   int64
	CustomerID  int64
	BranchID    int64
	Description string

	// RequestedTime время, как его прислал клиент (до нормализации)
	RequestedTime time.Time
	// ArrivalWindowStart начало окна приезда - всегда выровнено по границе
	// окна филиала, единственное авторитетное значение для планирования
	ArrivalWindowStart time.Time
	// WindowMinutes размер окна филиала на момент создания заявки
	WindowMinutes int

	Status BookingStatus

	// Связанные услуги и фотографии (опционально)
	ServiceIDs []int64
	ImageURLs  []string

	// Denormalized vehicle data for history
	VehiclePlate *string
	VehicleModel *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still claims a slot (Pending or Accepted)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// CanBeCancelled returns true if the booking may still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// BranchBookingsFilter фильтр для выборки заявок филиала
type BranchBookingsFilter struct {
	BranchID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeTerminal bool           // Включать ли завершенные/отмененные заявки
}
