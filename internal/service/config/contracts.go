package config

import (
	"context"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания филиала
type ScheduleRepository interface {
	GetByBranch(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error)
	Upsert(ctx context.Context, cfg *domain.BranchScheduleConfig) (*domain.BranchScheduleConfig, error)
}

// BranchServiceClient интерфейс клиента для BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	IsBranchStaff(ctx context.Context, userID, branchID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
