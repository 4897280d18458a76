package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArrivalService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации расписания филиалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var configColumns = []string{
	"id",
	"branch_id",
	"window_minutes",
	"max_per_window",
	"max_wip",
	"enforce_wip",
	"active",
	"created_at",
	"updated_at",
}

// GetByBranch получает конфигурацию расписания филиала
func (r *Repository) GetByBranch(ctx context.Context, branchID int64) (*domain.BranchScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("branch_schedule_configs").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.BranchScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.BranchID,
		&cfg.WindowMinutes,
		&cfg.MaxPerWindow,
		&cfg.MaxWip,
		&cfg.EnforceWip,
		&cfg.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или обновляет конфигурацию расписания филиала
func (r *Repository) Upsert(ctx context.Context, cfg *domain.BranchScheduleConfig) (*domain.BranchScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branch_schedule_configs").
		Columns(
			"branch_id",
			"window_minutes",
			"max_per_window",
			"max_wip",
			"enforce_wip",
			"active",
		).
		Values(
			cfg.BranchID,
			cfg.WindowMinutes,
			cfg.MaxPerWindow,
			cfg.MaxWip,
			cfg.EnforceWip,
			cfg.Active,
		).
		Suffix(`ON CONFLICT (branch_id) DO UPDATE SET
			window_minutes = EXCLUDED.window_minutes,
			max_per_window = EXCLUDED.max_per_window,
			max_wip = EXCLUDED.max_wip,
			enforce_wip = EXCLUDED.enforce_wip,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
