package complete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("complete_booking: booking not found")

	// ErrInvalidStateTransition возвращается, когда заявку нельзя завершить из текущего статуса,
	// в том числе при повторной попытке завершения
	ErrInvalidStateTransition = errors.New("complete_booking: invalid state transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
