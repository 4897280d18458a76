package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/vehicleservice"
)

// BookingRepository интерфейс репозитория заявок на прибытие
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория конфигурации расписания филиала
type ScheduleRepository interface {
	GetByBranch(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
}

// CapacityGuard интерфейс проверок вместимости и лимитов
type CapacityGuard interface {
	CheckActiveRequestCeiling(ctx context.Context, customerID int64, maxActive int) error
	CheckVehicleSingleActive(ctx context.Context, vehicleID int64) error
	CheckVehicleNotInRepair(ctx context.Context, vehicleID int64) error
	CheckDailyVehicleCeiling(ctx context.Context, vehicleID int64, windowStart time.Time, maxDaily int) error
	CheckDuplicateSlot(ctx context.Context, customerID, vehicleID, branchID int64, windowStart time.Time) error
}

// BranchServiceClient интерфейс клиента для BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
}

// VehicleServiceClient интерфейс клиента для VehicleService
type VehicleServiceClient interface {
	GetVehicle(ctx context.Context, vehicleID int64) (*vehicleservice.Vehicle, error)
}

// EventPublisher интерфейс публикации событий жизненного цикла заявки
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, routingKey string, event notifications.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
