package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
)

// BookingRepository интерфейс репозитория заявок на прибытие
type BookingRepository interface {
	GetAcceptedInRange(ctx context.Context, branchID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория конфигурации расписания филиала
type ScheduleRepository interface {
	GetByBranch(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
}

// BranchServiceClient интерфейс клиента для BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
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
