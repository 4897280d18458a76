package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArrivalService/internal/api/handlers"
	"github.com/m04kA/SMC-ArrivalService/internal/api/middleware"
	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	createBooking "github.com/m04kA/SMC-ArrivalService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidRequestedTime = "некорректный формат времени прибытия, ожидается RFC 3339"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgBranchNotFound       = "филиал не найден"
	msgBranchInactive       = "филиал не принимает заявки"
	msgBranchClosed         = "филиал закрыт в выбранный день"
	msgOutsideHours         = "окно прибытия вне рабочих часов филиала"
	msgVehicleNotFound      = "автомобиль не найден"
	msgVehicleNotOwned      = "автомобиль не принадлежит пользователю"
	msgSlotInPast           = "выбранное окно прибытия уже прошло"
	msgTooManyActive        = "превышен лимит активных заявок"
	msgVehicleActive        = "у автомобиля уже есть активная заявка"
	msgVehicleInRepair      = "автомобиль уже находится в ремонте"
	msgDailyLimit           = "превышен дневной лимит заявок для автомобиля"
	msgDuplicateSlot        = "заявка на это окно уже существует"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse requested time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestedTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrBranchNotFound):
			h.logger.Warn("POST /bookings - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createBooking.ErrBranchInactive):
			h.logger.Warn("POST /bookings - Branch inactive: branch_id=%d", req.BranchID)
			handlers.RespondError(w, http.StatusConflict, msgBranchInactive)

		case errors.Is(err, createBooking.ErrBranchClosed):
			h.logger.Warn("POST /bookings - Branch closed: branch_id=%d", req.BranchID)
			handlers.RespondBadRequest(w, msgBranchClosed)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: branch_id=%d", req.BranchID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createBooking.ErrVehicleNotOwned):
			h.logger.Warn("POST /bookings - Vehicle not owned: vehicle_id=%d, customer_id=%d", req.VehicleID, customerID)
			handlers.RespondForbidden(w, msgVehicleNotOwned)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, capacity.ErrActiveRequestLimitExceeded):
			h.logger.Warn("POST /bookings - Active request limit: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgTooManyActive)

		case errors.Is(err, capacity.ErrVehicleAlreadyHasActiveRequest):
			h.logger.Warn("POST /bookings - Vehicle already active: vehicle_id=%d", req.VehicleID)
			handlers.RespondError(w, http.StatusConflict, msgVehicleActive)

		case errors.Is(err, capacity.ErrVehicleUnderActiveRepair):
			h.logger.Warn("POST /bookings - Vehicle in repair: vehicle_id=%d", req.VehicleID)
			handlers.RespondError(w, http.StatusConflict, msgVehicleInRepair)

		case errors.Is(err, capacity.ErrDailyVehicleLimitExceeded):
			h.logger.Warn("POST /bookings - Daily vehicle limit: vehicle_id=%d", req.VehicleID)
			handlers.RespondError(w, http.StatusConflict, msgDailyLimit)

		case errors.Is(err, capacity.ErrDuplicateSlotRequest):
			h.logger.Warn("POST /bookings - Duplicate slot request: customer_id=%d, vehicle_id=%d", customerID, req.VehicleID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateSlot)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, branch_id=%d",
		result.ID, customerID, req.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
