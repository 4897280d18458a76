package models

import (
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации расписания филиала
type UpdateConfigRequest struct {
	UserID        int64 `json:"userId"`
	BranchID      int64 `json:"branchId"`
	WindowMinutes int   `json:"windowMinutes"`
	MaxPerWindow  int   `json:"maxPerWindow"`
	MaxWip        int   `json:"maxWip"`
	EnforceWip    bool  `json:"enforceWip"`
	Active        bool  `json:"active"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.BranchScheduleConfig {
	return &domain.BranchScheduleConfig{
		BranchID:      r.BranchID,
		WindowMinutes: r.WindowMinutes,
		MaxPerWindow:  r.MaxPerWindow,
		MaxWip:        r.MaxWip,
		EnforceWip:    r.EnforceWip,
		Active:        r.Active,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания филиала
type ConfigResponse struct {
	ID            int64     `json:"id"`
	BranchID      int64     `json:"branchId"`
	WindowMinutes int       `json:"windowMinutes"`
	MaxPerWindow  int       `json:"maxPerWindow"`
	MaxWip        int       `json:"maxWip"`
	EnforceWip    bool      `json:"enforceWip"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.BranchScheduleConfig) *ConfigResponse {
	if cfg == nil {
		return nil
	}

	return &ConfigResponse{
		ID:            cfg.ID,
		BranchID:      cfg.BranchID,
		WindowMinutes: cfg.WindowMinutes,
		MaxPerWindow:  cfg.MaxPerWindow,
		MaxWip:        cfg.MaxWip,
		EnforceWip:    cfg.EnforceWip,
		Active:        cfg.Active,
		CreatedAt:     cfg.CreatedAt,
		UpdatedAt:     cfg.UpdatedAt,
	}
}
