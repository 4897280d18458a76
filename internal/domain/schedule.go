package domain

import (
	"time"

	"github.com/m04kA/SMC-ArrivalService/pkg/types"
)

// BranchScheduleConfig represents the arrival-window configuration of a branch
type BranchScheduleConfig struct {
	ID       int64
	BranchID int64
	// WindowMinutes размер окна приезда; 0 = дефолтные 30 минут
	WindowMinutes int
	// MaxPerWindow максимум принятых (accepted) заявок на одно окно
	MaxPerWindow int
	// MaxWip максимум автомобилей одновременно в цехе
	MaxWip int
	// EnforceWip включает проверку WIP-лимита при check-in
	// При false (или MaxWip <= 0) заезд не ограничивается загрузкой цеха
	EnforceWip bool
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectiveWindowMinutes returns the configured window size or the default
func (c *BranchScheduleConfig) EffectiveWindowMinutes() int {
	if c.WindowMinutes <= 0 {
		return DefaultWindowMinutes
	}
	return c.WindowMinutes
}

// WipEnforced returns true if the WIP limit must be checked at check-in
func (c *BranchScheduleConfig) WipEnforced() bool {
	return c.EnforceWip && c.MaxWip > 0
}

// OperatingHour расписание работы филиала на один день недели
type OperatingHour struct {
	BranchID  int64
	Weekday   time.Weekday
	Open      bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// IsConfigured returns true if the day has usable open/close times
func (h *OperatingHour) IsConfigured() bool {
	return !h.OpenTime.IsZero() && !h.CloseTime.IsZero()
}
