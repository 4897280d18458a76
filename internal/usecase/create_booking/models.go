package create_booking

import "time"

// Request модель запроса на создание заявки на прибытие
type Request struct {
	CustomerID    int64     // ID клиента
	VehicleID     int64     // ID автомобиля
	BranchID      int64     // ID филиала
	RequestedTime time.Time // Запрошенное время прибытия (до нормализации)
	Description   string    // Описание проблемы
	ServiceIDs    []int64   // Предварительно выбранные услуги (опционально)
	ImageURLs     []string  // Фотографии повреждений (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID                 int64     // ID созданной заявки
	CustomerID         int64     // ID клиента
	VehicleID          int64     // ID автомобиля
	BranchID           int64     // ID филиала
	RequestedTime      time.Time // Запрошенное время (как прислал клиент)
	ArrivalWindowStart time.Time // Нормализованное начало окна прибытия
	WindowMinutes      int       // Размер окна в минутах
	Status             string    // Статус заявки
	Description        string    // Описание проблемы
	ServiceIDs         []int64   // Выбранные услуги
	ImageURLs          []string  // Фотографии

	// Денормализованные данные автомобиля
	VehiclePlate *string // Госномер
	VehicleModel *string // Марка и модель

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
