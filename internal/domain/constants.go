package domain

import "github.com/m04kA/SMC-ArrivalService/pkg/timewindow"

// Default configuration values
const (
	DefaultWindowMinutes             = timewindow.DefaultWindowMinutes
	DefaultMaxPerWindow              = 1
	DefaultMaxActiveRequests         = 3  // Максимум активных заявок у одного клиента
	DefaultMaxDailyPerVehicle        = 2  // Максимум заявок на автомобиль в один день
	DefaultCancellationCutoffMinutes = 30 // За сколько минут до окна еще можно отменить
)

// Business validation constants
const (
	MinWindowMinutes = 5
	MaxWindowMinutes = 480 // 8 часов
	MinPerWindow     = 1
	MaxPerWindow     = 100
	MinWip           = 0
	MaxWip           = 100

	MaxDescriptionLength        = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Limits настройки guard-лимитов, задаются в конфигурации сервиса
type Limits struct {
	// MaxActiveRequests потолок активных заявок одного клиента
	MaxActiveRequests int
	// MaxDailyPerVehicle потолок заявок на автомобиль в один календарный день
	MaxDailyPerVehicle int
	// CancellationCutoffMinutes за сколько минут до окна еще можно отменить
	CancellationCutoffMinutes int
}

// DefaultLimits returns the limits used when the config section is absent
func DefaultLimits() Limits {
	return Limits{
		MaxActiveRequests:         DefaultMaxActiveRequests,
		MaxDailyPerVehicle:        DefaultMaxDailyPerVehicle,
		CancellationCutoffMinutes: DefaultCancellationCutoffMinutes,
	}
}
