package get_branch_config

import (
	"context"

	"github.com/m04kA/SMC-ArrivalService/internal/service/config/models"
)

type ConfigService interface {
	GetByBranch(ctx context.Context, branchID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
