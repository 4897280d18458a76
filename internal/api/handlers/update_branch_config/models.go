package update_branch_config

import (
	"github.com/m04kA/SMC-ArrivalService/internal/service/config/models"
)

// UpdateConfigRequest тело запроса на обновление конфигурации расписания
type UpdateConfigRequest struct {
	WindowMinutes int  `json:"windowMinutes"`
	MaxPerWindow  int  `json:"maxPerWindow"`
	MaxWip        int  `json:"maxWip"`
	EnforceWip    bool `json:"enforceWip"`
	Active        bool `json:"active"`
}

// ToServiceRequest конвертирует HTTP DTO в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(userID, branchID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:        userID,
		BranchID:      branchID,
		WindowMinutes: r.WindowMinutes,
		MaxPerWindow:  r.MaxPerWindow,
		MaxWip:        r.MaxWip,
		EnforceWip:    r.EnforceWip,
		Active:        r.Active,
	}
}
