package capacity

import (
	"context"
	"fmt"
	"time"
)

// Guard набор независимых инвариантов, ограничивающих создание, принятие
// и заезд заявок. Каждая проверка - отдельный предикат: операции (usecases)
// составляют из них нужную цепочку, первый сработавший предикат прерывает
// операцию со своей типизированной ошибкой
type Guard struct {
	counts  BookingCounts
	tickets TicketDirectory
}

// NewGuard создает guard поверх счетчиков заявок и тикетной подсистемы
func NewGuard(counts BookingCounts, tickets TicketDirectory) *Guard {
	return &Guard{
		counts:  counts,
		tickets: tickets,
	}
}

// CheckActiveRequestCeiling проверяет потолок активных заявок клиента
func (g *Guard) CheckActiveRequestCeiling(ctx context.Context, customerID int64, maxActive int) error {
	count, err := g.counts.CountActiveByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("%w: count active by customer: %v", ErrInternal, err)
	}

	if count >= maxActive {
		return fmt.Errorf("%w: customer=%d has %d of %d", ErrActiveRequestLimitExceeded, customerID, count, maxActive)
	}
	return nil
}

// CheckVehicleSingleActive проверяет, что у автомобиля нет другой активной заявки
func (g *Guard) CheckVehicleSingleActive(ctx context.Context, vehicleID int64) error {
	count, err := g.counts.CountActiveByVehicle(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("%w: count active by vehicle: %v", ErrInternal, err)
	}

	if count > 0 {
		return fmt.Errorf("%w: vehicle=%d", ErrVehicleAlreadyHasActiveRequest, vehicleID)
	}
	return nil
}

// CheckVehicleNotInRepair проверяет, что автомобиль не находится в ремонте
func (g *Guard) CheckVehicleNotInRepair(ctx context.Context, vehicleID int64) error {
	open, err := g.tickets.HasOpenTicket(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("%w: check open ticket: %v", ErrInternal, err)
	}

	if open {
		return fmt.Errorf("%w: vehicle=%d", ErrVehicleUnderActiveRepair, vehicleID)
	}
	return nil
}

// CheckDailyVehicleCeiling проверяет дневной лимит заявок на автомобиль
// День определяется по локальному календарному дню windowStart
func (g *Guard) CheckDailyVehicleCeiling(ctx context.Context, vehicleID int64, windowStart time.Time, maxDaily int) error {
	dayStart := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, windowStart.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := g.counts.CountByVehicleInRange(ctx, vehicleID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("%w: count by vehicle in range: %v", ErrInternal, err)
	}

	if count >= maxDaily {
		return fmt.Errorf("%w: vehicle=%d has %d of %d on %s",
			ErrDailyVehicleLimitExceeded, vehicleID, count, maxDaily, dayStart.Format("2006-01-02"))
	}
	return nil
}

// CheckDuplicateSlot проверяет, что такой же активной заявки на это окно еще нет
func (g *Guard) CheckDuplicateSlot(ctx context.Context, customerID, vehicleID, branchID int64, windowStart time.Time) error {
	exists, err := g.counts.ExistsActiveSlotRequest(ctx, customerID, vehicleID, branchID, windowStart)
	if err != nil {
		return fmt.Errorf("%w: check duplicate slot: %v", ErrInternal, err)
	}

	if exists {
		return fmt.Errorf("%w: customer=%d, vehicle=%d, branch=%d, window=%s",
			ErrDuplicateSlotRequest, customerID, vehicleID, branchID, windowStart.Format(time.RFC3339))
	}
	return nil
}

// CheckWindowCapacity проверяет вместимость окна по принятым заявкам
// Вызывается при принятии заявки (accept), внутри той же транзакции,
// что и смена статуса - счетчик перечитывается непосредственно перед записью
func (g *Guard) CheckWindowCapacity(ctx context.Context, branchID int64, windowStart time.Time, maxPerWindow int) error {
	count, err := g.counts.CountAcceptedInWindow(ctx, branchID, windowStart)
	if err != nil {
		return fmt.Errorf("%w: count accepted in window: %v", ErrInternal, err)
	}

	if count >= maxPerWindow {
		return fmt.Errorf("%w: branch=%d, window=%s, %d of %d",
			ErrWindowCapacityExceeded, branchID, windowStart.Format(time.RFC3339), count, maxPerWindow)
	}
	return nil
}

// CheckWipCapacity проверяет загрузку цеха филиала по открытым тикетам
// Вызывается при заезде (check-in), когда WIP-лимит включен в конфигурации филиала
func (g *Guard) CheckWipCapacity(ctx context.Context, branchID int64, maxWip int) error {
	count, err := g.tickets.OpenTicketCount(ctx, branchID)
	if err != nil {
		return fmt.Errorf("%w: count open tickets: %v", ErrInternal, err)
	}

	if count >= maxWip {
		return fmt.Errorf("%w: branch=%d, %d of %d", ErrWipCapacityExceeded, branchID, count, maxWip)
	}
	return nil
}
