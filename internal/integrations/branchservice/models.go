package branchservice

import (
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Branch модель филиала из BranchService
type Branch struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Active         bool         `json:"active"`
	OperatingHours WeekSchedule `json:"operating_hours"`
}

// WeekSchedule недельное расписание работы филиала
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "18:00"
}

// ScheduleFor возвращает расписание филиала на указанный день недели
func (b *Branch) ScheduleFor(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return b.OperatingHours.Monday
	case time.Tuesday:
		return b.OperatingHours.Tuesday
	case time.Wednesday:
		return b.OperatingHours.Wednesday
	case time.Thursday:
		return b.OperatingHours.Thursday
	case time.Friday:
		return b.OperatingHours.Friday
	case time.Saturday:
		return b.OperatingHours.Saturday
	case time.Sunday:
		return b.OperatingHours.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// OperatingHourFor конвертирует расписание дня в доменную модель
// Возвращает nil, если расписание на этот день не настроено
func (b *Branch) OperatingHourFor(weekday time.Weekday) *domain.OperatingHour {
	ds := b.ScheduleFor(weekday)

	oh := &domain.OperatingHour{
		BranchID: b.ID,
		Weekday:  weekday,
		Open:     ds.IsOpen,
	}
	if ds.OpenTime != nil {
		oh.OpenTime = types.TimeString(*ds.OpenTime)
	}
	if ds.CloseTime != nil {
		oh.CloseTime = types.TimeString(*ds.CloseTime)
	}
	return oh
}

// ErrorResponse модель ошибки от BranchService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
