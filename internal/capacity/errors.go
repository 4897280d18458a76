package capacity

import "errors"

var (
	// ErrActiveRequestLimitExceeded возвращается, когда у клиента слишком много активных заявок
	ErrActiveRequestLimitExceeded = errors.New("capacity: active request limit exceeded")

	// ErrVehicleAlreadyHasActiveRequest возвращается, когда у автомобиля уже есть активная заявка
	ErrVehicleAlreadyHasActiveRequest = errors.New("capacity: vehicle already has an active request")

	// ErrVehicleUnderActiveRepair возвращается, когда автомобиль уже в ремонте (открытый тикет)
	ErrVehicleUnderActiveRepair = errors.New("capacity: vehicle is under active repair")

	// ErrDailyVehicleLimitExceeded возвращается при превышении дневного лимита заявок на автомобиль
	ErrDailyVehicleLimitExceeded = errors.New("capacity: daily per-vehicle limit exceeded")

	// ErrDuplicateSlotRequest возвращается при повторной заявке на то же окно
	ErrDuplicateSlotRequest = errors.New("capacity: duplicate request for the same slot")

	// ErrWindowCapacityExceeded возвращается, когда окно приезда уже заполнено
	ErrWindowCapacityExceeded = errors.New("capacity: window capacity exceeded")

	// ErrWipCapacityExceeded возвращается, когда цех филиала заполнен
	ErrWipCapacityExceeded = errors.New("capacity: wip capacity exceeded")

	// ErrInternal возвращается при ошибках обращения к хранилищу или внешним сервисам
	ErrInternal = errors.New("capacity: internal error")
)
