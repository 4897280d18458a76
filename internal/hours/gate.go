package hours

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
)

// Пакет hours превращает недельное расписание филиала (время суток по дням
// недели) в абсолютные границы рабочего дня для конкретной даты и проверяет,
// что окно приезда целиком помещается в эти границы.

// ResolveOpenClose возвращает абсолютные моменты открытия и закрытия филиала
// на календарную дату date. Время суток из расписания совмещается с датой
// в локации date (смещение филиала задает вызывающая сторона датой)
func ResolveOpenClose(oh *domain.OperatingHour, date time.Time) (open, close time.Time, err error) {
	if oh == nil {
		return time.Time{}, time.Time{}, ErrHoursNotConfigured
	}

	if !oh.Open || !oh.IsConfigured() {
		return time.Time{}, time.Time{}, ErrClosedThisDay
	}

	open, err = oh.OpenTime.At(date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid open time: %v", ErrClosedThisDay, err)
	}

	close, err = oh.CloseTime.At(date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid close time: %v", ErrClosedThisDay, err)
	}

	if !open.Before(close) {
		return time.Time{}, time.Time{}, ErrClosedThisDay
	}

	return open, close, nil
}

// EnsureWithinHours проверяет, что окно [windowStart, windowStart+windowMinutes)
// целиком лежит внутри рабочих часов филиала в день windowStart
func EnsureWithinHours(oh *domain.OperatingHour, windowStart time.Time, windowMinutes int) error {
	open, close, err := ResolveOpenClose(oh, windowStart)
	if err != nil {
		return err
	}

	windowEnd := windowStart.Add(time.Duration(windowMinutes) * time.Minute)

	if windowStart.Before(open) || windowEnd.After(close) {
		return fmt.Errorf("%w: window %s-%s, hours %s-%s",
			ErrOutsideOperatingHours,
			windowStart.Format(domain.TimeFormat),
			windowEnd.Format(domain.TimeFormat),
			open.Format(domain.TimeFormat),
			close.Format(domain.TimeFormat),
		)
	}

	return nil
}
