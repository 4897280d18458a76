package accept_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория заявок на прибытие
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusAndWindow(ctx context.Context, id int64, status domain.BookingStatus, windowStart time.Time, windowMinutes int) error
}

// ScheduleRepository интерфейс репозитория конфигурации расписания филиала
type ScheduleRepository interface {
	GetByBranch(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
}

// CapacityGuard интерфейс проверки вместимости окна
type CapacityGuard interface {
	CheckWindowCapacity(ctx context.Context, branchID int64, windowStart time.Time, maxPerWindow int) error
}

// BranchServiceClient интерфейс клиента для BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
}

// EventPublisher интерфейс публикации событий жизненного цикла заявки
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, routingKey string, event notifications.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
