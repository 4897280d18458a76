package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	branchClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания филиалов
type Service struct {
	scheduleRepo   ScheduleRepository
	branchClient   BranchServiceClient
	identityClient IdentityServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	scheduleRepo ScheduleRepository,
	branchClient BranchServiceClient,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		branchClient:   branchClient,
		identityClient: identityClient,
		logger:         logger,
	}
}

// GetByBranch получает конфигурацию расписания филиала
// Если конфигурация не настроена, возвращает дефолтную
func (s *Service) GetByBranch(ctx context.Context, branchID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByBranch: fetching config for branch=%d", branchID)

	cfg, err := s.scheduleRepo.GetByBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Info("GetByBranch: branch=%d has no config, returning defaults", branchID)
			return models.FromDomainConfig(&domain.BranchScheduleConfig{
				BranchID:      branchID,
				WindowMinutes: domain.DefaultWindowMinutes,
				MaxPerWindow:  domain.DefaultMaxPerWindow,
				Active:        true,
			}), nil
		}
		s.logger.Error("GetByBranch: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetByBranch - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByBranch: successfully fetched config id=%d", cfg.ID)
	return models.FromDomainConfig(cfg), nil
}

// Update создает или обновляет конфигурацию расписания филиала
// Доступно только сотрудникам филиала
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for branch=%d by user=%d", req.BranchID, req.UserID)

	if err := s.validateConfigData(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// Проверяем существование филиала
	if _, err := s.branchClient.GetBranch(ctx, req.BranchID); err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			s.logger.Warn("Update: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("Update: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	isStaff, err := s.identityClient.IsBranchStaff(ctx, req.UserID, req.BranchID)
	if err != nil {
		s.logger.Error("Update: failed to check staff access for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check access: %v", ErrInternal, err)
	}
	if !isStaff {
		s.logger.Warn("Update: user=%d is not staff of branch=%d", req.UserID, req.BranchID)
		return nil, ErrAccessDenied
	}

	cfg, err := s.scheduleRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Update: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config id=%d for branch=%d", cfg.ID, req.BranchID)
	return models.FromDomainConfig(cfg), nil
}

// validateConfigData проверяет границы значений конфигурации
func (s *Service) validateConfigData(req *models.UpdateConfigRequest) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.WindowMinutes < domain.MinWindowMinutes || req.WindowMinutes > domain.MaxWindowMinutes {
		return fmt.Errorf("%w: windowMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinWindowMinutes, domain.MaxWindowMinutes)
	}

	if req.MaxPerWindow < domain.MinPerWindow || req.MaxPerWindow > domain.MaxPerWindow {
		return fmt.Errorf("%w: maxPerWindow must be between %d and %d",
			ErrInvalidInput, domain.MinPerWindow, domain.MaxPerWindow)
	}

	if req.MaxWip < domain.MinWip || req.MaxWip > domain.MaxWip {
		return fmt.Errorf("%w: maxWip must be between %d and %d",
			ErrInvalidInput, domain.MinWip, domain.MaxWip)
	}

	if req.EnforceWip && req.MaxWip <= 0 {
		return fmt.Errorf("%w: maxWip must be positive when wip limit is enforced", ErrInvalidInput)
	}

	return nil
}
