package notifications

import "time"

// Routing keys событий жизненного цикла заявки
const (
	RKBookingCreated   = "booking.created"
	RKBookingAccepted  = "booking.accepted"
	RKBookingArrived   = "booking.arrived"
	RKBookingCompleted = "booking.completed"
	RKBookingCancelled = "booking.cancelled"
	RKBookingRejected  = "booking.rejected"
)

// BookingEvent уведомление о переходе заявки в новый статус
// Публикуется после успешного коммита транзакции, best-effort:
// потеря события не влияет на корректность планировщика
type BookingEvent struct {
	EventID            string    `json:"event_id"`
	BookingID          int64     `json:"booking_id"`
	CustomerID         int64     `json:"customer_id"`
	VehicleID          int64     `json:"vehicle_id"`
	BranchID           int64     `json:"branch_id"`
	Status             string    `json:"status"`
	ArrivalWindowStart time.Time `json:"arrival_window_start"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// withDefaults заполняет EventID и OccurredAt, если вызывающая сторона их не задала
func (e BookingEvent) withDefaults(newID func() string, now func() time.Time) BookingEvent {
	if e.EventID == "" {
		e.EventID = newID()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now()
	}
	return e
}
