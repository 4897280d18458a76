package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCancelled возвращается при повторной попытке отмены
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrInvalidStateTransition возвращается, когда заявку нельзя отменить из текущего статуса
	ErrInvalidStateTransition = errors.New("cancel_booking: invalid state transition")

	// ErrTooLateToCancel возвращается, когда до окна прибытия осталось меньше времени отсечки
	ErrTooLateToCancel = errors.New("cancel_booking: too late to cancel")

	// ErrAccessDenied возвращается, когда пользователь не владелец заявки и не сотрудник филиала
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
