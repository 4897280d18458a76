package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/hours"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	branchClient "github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/pkg/timewindow"
)

// UseCase use case для расчета доступности окон прибытия
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	branchClient BranchServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	branchClient BranchServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		branchClient: branchClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчета доступности
// Вместимость окна считается только по подтвержденным заявкам:
// pending-заявки место не резервируют.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: branch=%d, date=%s", req.BranchID, req.Date.Format(domain.DateFormat))

	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// 1. Получаем филиал
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailability: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailability: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 2. Получаем конфигурацию расписания
	config, err := uc.scheduleRepo.GetByBranch(ctx, req.BranchID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailability: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if config == nil {
		config = &domain.BranchScheduleConfig{
			BranchID:      req.BranchID,
			WindowMinutes: domain.DefaultWindowMinutes,
			MaxPerWindow:  domain.DefaultMaxPerWindow,
			Active:        true,
		}
	}

	windowMinutes := config.EffectiveWindowMinutes()

	resp := &Response{
		BranchID:      req.BranchID,
		Date:          req.Date,
		WindowMinutes: windowMinutes,
		Slots:         []domain.SlotAvailability{},
	}

	// Неактивный филиал не принимает заявки: окон нет
	if !branch.Active || !config.Active {
		uc.logger.Info("GetAvailability: branch id=%d is inactive", req.BranchID)
		return resp, nil
	}

	// 3. Определяем рабочие часы на эту дату
	open, close, err := hours.ResolveOpenClose(branch.OperatingHourFor(req.Date.Weekday()), req.Date)
	if err != nil {
		if errors.Is(err, hours.ErrHoursNotConfigured) || errors.Is(err, hours.ErrClosedThisDay) {
			uc.logger.Info("GetAvailability: branch id=%d is closed on %s", req.BranchID, req.Date.Format(domain.DateFormat))
			return resp, nil
		}
		uc.logger.Error("GetAvailability: failed to resolve operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve operating hours: %v", ErrInternal, err)
	}

	// 4. Считаем занятость по подтвержденным заявкам дня
	accepted, err := uc.bookingRepo.GetAcceptedInRange(ctx, req.BranchID, open, close)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get accepted bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get accepted bookings: %v", ErrInternal, err)
	}

	used := make(map[int64]int, len(accepted))
	for _, b := range accepted {
		key := timewindow.Quantize(b.ArrivalWindowStart, windowMinutes).Unix()
		used[key]++
	}

	// 5. Перечисляем окна рабочего дня, пропуская уже прошедшие
	resp.Slots = enumerateSlots(open, close, now, windowMinutes, config.MaxPerWindow, used)

	uc.logger.Info("GetAvailability: branch id=%d has %d windows on %s",
		req.BranchID, len(resp.Slots), req.Date.Format(domain.DateFormat))

	return resp, nil
}

// enumerateSlots строит список окон между open и close
// Сетка окон привязана к эпохе, поэтому первое окно выравнивается вверх до open
func enumerateSlots(open, close, now time.Time, windowMinutes, maxPerWindow int, used map[int64]int) []domain.SlotAvailability {
	step := time.Duration(windowMinutes) * time.Minute

	start := timewindow.Quantize(open, windowMinutes)
	if start.Before(open) {
		start = start.Add(step)
	}

	slots := []domain.SlotAvailability{}
	for ws := start; !ws.Add(step).After(close); ws = ws.Add(step) {
		we := ws.Add(step)

		// Прошедшие окна не показываем
		if !we.After(now) {
			continue
		}

		slots = append(slots, domain.NewSlotAvailability(ws, we, used[ws.Unix()], maxPerWindow))
	}

	return slots
}
