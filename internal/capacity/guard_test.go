package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeCounts управляемая заглушка счетчиков заявок
type fakeCounts struct {
	activeByCustomer int
	activeByVehicle  int
	inRange          int
	duplicateExists  bool
	acceptedInWindow int
	err              error

	// Запоминаем границы дня для проверки вычисления диапазона
	lastFrom, lastTo time.Time
}

func (f *fakeCounts) CountActiveByCustomer(_ context.Context, _ int64) (int, error) {
	return f.activeByCustomer, f.err
}

func (f *fakeCounts) CountActiveByVehicle(_ context.Context, _ int64) (int, error) {
	return f.activeByVehicle, f.err
}

func (f *fakeCounts) CountByVehicleInRange(_ context.Context, _ int64, from, to time.Time) (int, error) {
	f.lastFrom, f.lastTo = from, to
	return f.inRange, f.err
}

func (f *fakeCounts) ExistsActiveSlotRequest(_ context.Context, _, _, _ int64, _ time.Time) (bool, error) {
	return f.duplicateExists, f.err
}

func (f *fakeCounts) CountAcceptedInWindow(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.acceptedInWindow, f.err
}

// fakeTickets управляемая заглушка тикетной подсистемы
type fakeTickets struct {
	hasOpen   bool
	openCount int
	err       error
}

func (f *fakeTickets) HasOpenTicket(_ context.Context, _ int64) (bool, error) {
	return f.hasOpen, f.err
}

func (f *fakeTickets) OpenTicketCount(_ context.Context, _ int64) (int, error) {
	return f.openCount, f.err
}

func TestCheckActiveRequestCeiling(t *testing.T) {
	ctx := context.Background()

	t.Run("под лимитом", func(t *testing.T) {
		g := NewGuard(&fakeCounts{activeByCustomer: 2}, &fakeTickets{})
		assert.NoError(t, g.CheckActiveRequestCeiling(ctx, 1, 3))
	})

	t.Run("лимит достигнут", func(t *testing.T) {
		g := NewGuard(&fakeCounts{activeByCustomer: 3}, &fakeTickets{})
		assert.ErrorIs(t, g.CheckActiveRequestCeiling(ctx, 1, 3), ErrActiveRequestLimitExceeded)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		g := NewGuard(&fakeCounts{err: errors.New("db down")}, &fakeTickets{})
		assert.ErrorIs(t, g.CheckActiveRequestCeiling(ctx, 1, 3), ErrInternal)
	})
}

func TestCheckVehicleSingleActive(t *testing.T) {
	ctx := context.Background()

	t.Run("активных заявок нет", func(t *testing.T) {
		g := NewGuard(&fakeCounts{activeByVehicle: 0}, &fakeTickets{})
		assert.NoError(t, g.CheckVehicleSingleActive(ctx, 7))
	})

	t.Run("активная заявка уже есть", func(t *testing.T) {
		g := NewGuard(&fakeCounts{activeByVehicle: 1}, &fakeTickets{})
		assert.ErrorIs(t, g.CheckVehicleSingleActive(ctx, 7), ErrVehicleAlreadyHasActiveRequest)
	})
}

func TestCheckVehicleNotInRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("тикетов нет", func(t *testing.T) {
		g := NewGuard(&fakeCounts{}, &fakeTickets{hasOpen: false})
		assert.NoError(t, g.CheckVehicleNotInRepair(ctx, 7))
	})

	t.Run("автомобиль в ремонте", func(t *testing.T) {
		g := NewGuard(&fakeCounts{}, &fakeTickets{hasOpen: true})
		assert.ErrorIs(t, g.CheckVehicleNotInRepair(ctx, 7), ErrVehicleUnderActiveRepair)
	})

	t.Run("тикетная система недоступна", func(t *testing.T) {
		g := NewGuard(&fakeCounts{}, &fakeTickets{err: errors.New("timeout")})
		assert.ErrorIs(t, g.CheckVehicleNotInRepair(ctx, 7), ErrInternal)
	})
}

func TestCheckDailyVehicleCeiling(t *testing.T) {
	ctx := context.Background()
	msk := time.FixedZone("MSK", 3*60*60)
	windowStart := time.Date(2025, 10, 15, 10, 30, 0, 0, msk)

	t.Run("под лимитом", func(t *testing.T) {
		counts := &fakeCounts{inRange: 1}
		g := NewGuard(counts, &fakeTickets{})
		assert.NoError(t, g.CheckDailyVehicleCeiling(ctx, 7, windowStart, 2))

		// Границы дня считаются в локальном календаре окна
		assert.True(t, counts.lastFrom.Equal(time.Date(2025, 10, 15, 0, 0, 0, 0, msk)))
		assert.True(t, counts.lastTo.Equal(time.Date(2025, 10, 16, 0, 0, 0, 0, msk)))
	})

	t.Run("лимит достигнут", func(t *testing.T) {
		g := NewGuard(&fakeCounts{inRange: 2}, &fakeTickets{})
		assert.ErrorIs(t, g.CheckDailyVehicleCeiling(ctx, 7, windowStart, 2), ErrDailyVehicleLimitExceeded)
	})
}

func TestCheckDuplicateSlot(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

	t.Run("дубликата нет", func(t *testing.T) {
		g := NewGuard(&fakeCounts{duplicateExists: false}, &fakeTickets{})
		assert.NoError(t, g.CheckDuplicateSlot(ctx, 1, 7, 3, windowStart))
	})

	t.Run("дубликат найден", func(t *testing.T) {
		g := NewGuard(&fakeCounts{duplicateExists: true}, &fakeTickets{})
		assert.ErrorIs(t, g.CheckDuplicateSlot(ctx, 1, 7, 3, windowStart), ErrDuplicateSlotRequest)
	})
}

func TestCheckWindowCapacity(t *testing.T) {
	ctx := context.Background()
	windowStart := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	t.Run("есть свободные места", func(t *testing.T) {
		g := NewGuard(&fakeCounts{acceptedInWindow: 1}, &fakeTickets{})
		assert.NoError(t, g.CheckWindowCapacity(ctx, 3, windowStart, 2))
	})

	t.Run("окно заполнено", func(t *testing.T) {
		g := NewGuard(&fakeCounts{acceptedInWindow: 2}, &fakeTickets{})
		assert.ErrorIs(t, g.CheckWindowCapacity(ctx, 3, windowStart, 2), ErrWindowCapacityExceeded)
	})
}

func TestCheckWipCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("цех не заполнен", func(t *testing.T) {
		g := NewGuard(&fakeCounts{}, &fakeTickets{openCount: 4})
		assert.NoError(t, g.CheckWipCapacity(ctx, 3, 5))
	})

	t.Run("цех заполнен", func(t *testing.T) {
		g := NewGuard(&fakeCounts{}, &fakeTickets{openCount: 5})
		assert.ErrorIs(t, g.CheckWipCapacity(ctx, 3, 5), ErrWipCapacityExceeded)
	})
}
