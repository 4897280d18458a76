package check_in

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("check_in: booking not found")

	// ErrInvalidStateTransition возвращается, когда отметить прибытие нельзя из текущего статуса
	ErrInvalidStateTransition = errors.New("check_in: invalid state transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)
