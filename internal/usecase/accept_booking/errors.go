package accept_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("accept_booking: booking not found")

	// ErrInvalidStateTransition возвращается, когда заявку нельзя подтвердить из текущего статуса
	ErrInvalidStateTransition = errors.New("accept_booking: invalid state transition")

	// ErrBranchNotFound возвращается, когда филиал заявки не найден
	ErrBranchNotFound = errors.New("accept_booking: branch not found")

	// ErrBranchClosed возвращается, когда филиал закрыт в день окна прибытия
	ErrBranchClosed = errors.New("accept_booking: branch is closed on this day")

	// ErrOutsideOperatingHours возвращается, когда окно прибытия вне рабочих часов
	ErrOutsideOperatingHours = errors.New("accept_booking: arrival window is outside operating hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_booking: internal error")
)
