package reject_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("reject_booking: booking not found")

	// ErrInvalidStateTransition возвращается, когда заявку нельзя отклонить из текущего статуса
	ErrInvalidStateTransition = errors.New("reject_booking: invalid state transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_booking: internal error")
)
