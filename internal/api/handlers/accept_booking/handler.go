package accept_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArrivalService/internal/api/handlers"
	"github.com/m04kA/SMC-ArrivalService/internal/api/middleware"
	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	acceptBooking "github.com/m04kA/SMC-ArrivalService/internal/usecase/accept_booking"
)

const (
	msgInvalidBookingID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgInvalidState     = "заявку нельзя подтвердить из текущего статуса"
	msgBranchNotFound   = "филиал не найден"
	msgBranchClosed     = "филиал закрыт в день окна прибытия"
	msgOutsideHours     = "окно прибытия вне рабочих часов филиала"
	msgWindowFull       = "окно прибытия уже заполнено"
)

type Handler struct {
	useCase AcceptBookingUseCase
	logger  Logger
}

func NewHandler(useCase AcceptBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/accept - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptBooking.Request{
		BookingID: bookingID,
		StaffID:   staffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/accept - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptBooking.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/accept - Invalid state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, acceptBooking.ErrBranchNotFound):
			h.logger.Warn("POST /bookings/{id}/accept - Branch not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, acceptBooking.ErrBranchClosed):
			h.logger.Warn("POST /bookings/{id}/accept - Branch closed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBranchClosed)

		case errors.Is(err, acceptBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings/{id}/accept - Outside operating hours: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideHours)

		case errors.Is(err, capacity.ErrWindowCapacityExceeded):
			h.logger.Warn("POST /bookings/{id}/accept - Window full: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgWindowFull)

		default:
			h.logger.Error("POST /bookings/{id}/accept - Failed to accept booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/accept - Booking accepted: booking_id=%d, staff_id=%d", bookingID, staffID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
