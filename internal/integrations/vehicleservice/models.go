package vehicleservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Vehicle модель автомобиля из VehicleService
type Vehicle struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"owner_id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
}

// ErrorResponse модель ошибки от VehicleService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
