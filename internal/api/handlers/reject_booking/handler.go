package reject_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArrivalService/internal/api/handlers"
	"github.com/m04kA/SMC-ArrivalService/internal/api/middleware"
	rejectBooking "github.com/m04kA/SMC-ArrivalService/internal/usecase/reject_booking"
)

const (
	msgInvalidBookingID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgInvalidState     = "заявку нельзя отклонить из текущего статуса"
)

type Handler struct {
	useCase RejectBookingUseCase
	logger  Logger
}

func NewHandler(useCase RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RejectResponse HTTP response model
type RejectResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Handle POST /api/v1/bookings/{bookingId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reject - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectBooking.Request{
		BookingID: bookingID,
		StaffID:   staffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reject - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectBooking.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/reject - Invalid state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		default:
			h.logger.Error("POST /bookings/{id}/reject - Failed to reject booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reject - Booking rejected: booking_id=%d, staff_id=%d", bookingID, staffID)
	handlers.RespondJSON(w, http.StatusOK, &RejectResponse{ID: result.ID, Status: result.Status})
}
