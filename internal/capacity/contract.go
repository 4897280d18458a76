package capacity

import (
	"context"
	"time"
)

// BookingCounts интерфейс счетчиков по заявкам
// Каждый вызов идет в живое хранилище; если в контексте есть транзакция,
// подсчет выполняется внутри нее - значения не кэшируются между проверками
type BookingCounts interface {
	// CountActiveByCustomer число активных (pending/accepted) заявок клиента
	CountActiveByCustomer(ctx context.Context, customerID int64) (int, error)
	// CountActiveByVehicle число активных заявок автомобиля
	CountActiveByVehicle(ctx context.Context, vehicleID int64) (int, error)
	// CountByVehicleInRange число заявок автомобиля с окном приезда в [from, to)
	CountByVehicleInRange(ctx context.Context, vehicleID int64, from, to time.Time) (int, error)
	// ExistsActiveSlotRequest есть ли активная заявка на то же (клиент, автомобиль, филиал, окно)
	ExistsActiveSlotRequest(ctx context.Context, customerID, vehicleID, branchID int64, windowStart time.Time) (bool, error)
	// CountAcceptedInWindow число принятых заявок филиала в окне
	CountAcceptedInWindow(ctx context.Context, branchID int64, windowStart time.Time) (int, error)
}

// TicketDirectory интерфейс тикетной подсистемы (внешний коллаборатор)
type TicketDirectory interface {
	// HasOpenTicket есть ли у автомобиля открытый (неархивированный) тикет
	HasOpenTicket(ctx context.Context, vehicleID int64) (bool, error)
	// OpenTicketCount число открытых тикетов филиала (занятость цеха)
	OpenTicketCount(ctx context.Context, branchID int64) (int, error)
}
