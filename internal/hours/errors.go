package hours

import "errors"

var (
	// ErrHoursNotConfigured возвращается, когда у филиала нет расписания на этот день недели
	ErrHoursNotConfigured = errors.New("hours: operating hours not configured for this weekday")

	// ErrClosedThisDay возвращается, когда филиал закрыт в этот день
	ErrClosedThisDay = errors.New("hours: branch is closed on this day")

	// ErrOutsideOperatingHours возвращается, когда окно приезда выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("hours: window is outside operating hours")
)
