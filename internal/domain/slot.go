package domain

import "time"

// SlotAvailability занятость одного окна приезда
type SlotAvailability struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Used        int // Принятые заявки в окне
	Capacity    int // MaxPerWindow филиала
	Remaining   int // Capacity - Used (не меньше нуля)
	IsFull      bool
}

// NewSlotAvailability собирает SlotAvailability по использованию окна
func NewSlotAvailability(windowStart, windowEnd time.Time, used, capacity int) SlotAvailability {
	remaining := capacity - used
	if remaining < 0 {
		remaining = 0
	}
	return SlotAvailability{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Used:        used,
		Capacity:    capacity,
		Remaining:   remaining,
		IsFull:      remaining <= 0,
	}
}
