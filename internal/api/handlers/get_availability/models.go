package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ArrivalService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель одного окна прибытия
type SlotResponse struct {
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`
	Used        int    `json:"used"`
	Capacity    int    `json:"capacity"`
	Remaining   int    `json:"remaining"`
	IsFull      bool   `json:"isFull"`
}

// AvailabilityResponse HTTP модель ответа с доступностью окон
type AvailabilityResponse struct {
	BranchID      int64          `json:"branchId"`
	Date          string         `json:"date"`
	WindowMinutes int            `json:"windowMinutes"`
	Slots         []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		BranchID:      resp.BranchID,
		Date:          resp.Date.Format(domain.DateFormat),
		WindowMinutes: resp.WindowMinutes,
		Slots:         make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			WindowStart: slot.WindowStart.Format(time.RFC3339),
			WindowEnd:   slot.WindowEnd.Format(time.RFC3339),
			Used:        slot.Used,
			Capacity:    slot.Capacity,
			Remaining:   slot.Remaining,
			IsFull:      slot.IsFull,
		})
	}

	return out
}
