package check_in

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArrivalService/internal/api/handlers"
	"github.com/m04kA/SMC-ArrivalService/internal/api/middleware"
	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	checkIn "github.com/m04kA/SMC-ArrivalService/internal/usecase/check_in"
)

const (
	msgInvalidBookingID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgInvalidState     = "отметить прибытие можно только по подтвержденной заявке"
	msgWorkshopFull     = "цех филиала заполнен"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/check-in - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		BookingID: bookingID,
		StaffID:   staffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkIn.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/check-in - Invalid state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, capacity.ErrWipCapacityExceeded):
			h.logger.Warn("POST /bookings/{id}/check-in - Workshop full: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgWorkshopFull)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Booking checked in: booking_id=%d, staff_id=%d", bookingID, staffID)
	handlers.RespondJSON(w, http.StatusOK, &CheckInResponse{ID: result.ID, Status: result.Status})
}
