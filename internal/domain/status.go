package domain

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusArrived   BookingStatus = "arrived"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// transitions закрытая таблица допустимых переходов статусов
// Любой переход, которого здесь нет, отклоняется до записи в БД
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusAccepted, StatusCancelled, StatusRejected},
	StatusAccepted: {StatusArrived, StatusCompleted, StatusCancelled},
	StatusArrived:  {StatusCompleted},
	// Терминальные статусы переходов не имеют
	StatusCompleted: {},
	StatusCancelled: {},
	StatusRejected:  {},
}

// CanTransitionTo returns true if the transition from s to target is allowed
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsValid returns true if s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// ActiveStatuses статусы, при которых заявка удерживает слот
// Используется в guard-проверках и при подсчете занятости окон
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}

// TerminalStatuses список терминальных статусов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}
