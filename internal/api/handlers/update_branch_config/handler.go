package update_branch_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArrivalService/internal/api/handlers"
	"github.com/m04kA/SMC-ArrivalService/internal/api/middleware"
	"github.com/m04kA/SMC-ArrivalService/internal/service/config"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidConfig   = "некорректные параметры конфигурации"
	msgUnauthorized    = "пользователь не аутентифицирован"
	msgAccessDenied    = "нет доступа к конфигурации филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/branches/{branchId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /branches/{id}/config - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/config - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var body UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /branches/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	cfg, err := h.service.Update(r.Context(), body.ToServiceRequest(userID, branchID))
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id}/config - Invalid config: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, config.ErrBranchNotFound):
			h.logger.Warn("PUT /branches/{id}/config - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /branches/{id}/config - Access denied: branch_id=%d, user_id=%d", branchID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /branches/{id}/config - Failed to update config: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id}/config - Config updated: branch_id=%d, user_id=%d", branchID, userID)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
