package create_booking

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_booking: branch not found")

	// ErrBranchInactive возвращается, когда филиал неактивен и не принимает заявки
	ErrBranchInactive = errors.New("create_booking: branch is inactive")

	// ErrBranchClosed возвращается, когда филиал закрыт в указанный день
	ErrBranchClosed = errors.New("create_booking: branch is closed on this day")

	// ErrOutsideOperatingHours возвращается, когда окно прибытия вне рабочих часов
	ErrOutsideOperatingHours = errors.New("create_booking: arrival window is outside operating hours")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleNotOwned возвращается, когда автомобиль не принадлежит клиенту
	ErrVehicleNotOwned = errors.New("create_booking: vehicle does not belong to customer")

	// ErrSlotInPast возвращается, когда запрошенное окно уже прошло
	ErrSlotInPast = errors.New("create_booking: requested slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
