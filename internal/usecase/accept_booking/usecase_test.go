package accept_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/hours"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	"github.com/m04kA/SMC-ArrivalService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	updatedStatus domain.BookingStatus
	updatedWindow time.Time
	updatedWM     int
	updateCalls   int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *f.booking
	return &clone, nil
}

func (f *fakeBookingRepo) UpdateStatusAndWindow(_ context.Context, _ int64, status domain.BookingStatus, windowStart time.Time, windowMinutes int) error {
	f.updatedStatus = status
	f.updatedWindow = windowStart
	f.updatedWM = windowMinutes
	f.updateCalls++
	return nil
}

type fakeScheduleRepo struct {
	cfg *domain.BranchScheduleConfig
}

func (f *fakeScheduleRepo) GetByBranch(_ context.Context, _ int64) (*domain.BranchScheduleConfig, error) {
	if f.cfg == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.cfg, nil
}

type fakeGuard struct {
	windowCapacityErr error
	checkedWindow     time.Time
	checkedMax        int
}

func (f *fakeGuard) CheckWindowCapacity(_ context.Context, _ int64, windowStart time.Time, maxPerWindow int) error {
	f.checkedWindow = windowStart
	f.checkedMax = maxPerWindow
	return f.windowCapacityErr
}

type fakeBranchClient struct {
	branch *branchservice.Branch
	err    error
}

func (f *fakeBranchClient) GetBranch(_ context.Context, _ int64) (*branchservice.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.branch, nil
}

type fakePublisher struct {
	routingKeys []string
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, routingKey string, _ notifications.BookingEvent) {
	f.routingKeys = append(f.routingKeys, routingKey)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBranch() *branchservice.Branch {
	day := branchservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("18:00"),
	}
	return &branchservice.Branch{
		ID:     7,
		Active: true,
		OperatingHours: branchservice.WeekSchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
		},
	}
}

func pendingBooking(windowStart time.Time, windowMinutes int) *domain.Booking {
	return &domain.Booking{
		ID:                 101,
		CustomerID:         42,
		VehicleID:          5,
		BranchID:           7,
		Status:             domain.StatusPending,
		ArrivalWindowStart: windowStart,
		WindowMinutes:      windowMinutes,
	}
}

type fixture struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	schedule  *fakeScheduleRepo
	guard     *fakeGuard
	publisher *fakePublisher
}

func newFixture(booking *domain.Booking) *fixture {
	f := &fixture{
		repo:      &fakeBookingRepo{booking: booking},
		schedule:  &fakeScheduleRepo{},
		guard:     &fakeGuard{},
		publisher: &fakePublisher{},
	}
	f.uc = NewUseCase(
		f.repo, f.schedule, f.guard, &fakeBranchClient{branch: testBranch()},
		f.publisher, &fakeTxManager{}, nopLogger{},
	)
	return f
}

func TestExecute_AcceptsPendingBooking(t *testing.T) {
	// Среда, окно 10:30-11:00
	window := time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)
	f := newFixture(pendingBooking(window, 30))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.False(t, resp.AlreadyAccepted)
	assert.Equal(t, window, resp.ArrivalWindowStart)

	assert.Equal(t, 1, f.repo.updateCalls)
	assert.Equal(t, domain.StatusAccepted, f.repo.updatedStatus)

	require.Len(t, f.publisher.routingKeys, 1)
	assert.Equal(t, notifications.RKBookingAccepted, f.publisher.routingKeys[0])
}

func TestExecute_RenormalizesWindowToCurrentConfig(t *testing.T) {
	// Заявка создавалась при 30-минутных окнах, теперь филиал перешел на часовые
	window := time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)
	f := newFixture(pendingBooking(window, 30))
	f.schedule.cfg = &domain.BranchScheduleConfig{
		BranchID:      7,
		WindowMinutes: 60,
		MaxPerWindow:  2,
		Active:        true,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), resp.ArrivalWindowStart)
	assert.Equal(t, 60, resp.WindowMinutes)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), f.guard.checkedWindow)
	assert.Equal(t, 2, f.guard.checkedMax)
}

func TestExecute_IdempotentWhenAlreadyAccepted(t *testing.T) {
	window := time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)
	booking := pendingBooking(window, 30)
	booking.Status = domain.StatusAccepted
	f := newFixture(booking)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyAccepted)
	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.Zero(t, f.repo.updateCalls)
	assert.Empty(t, f.publisher.routingKeys)
}

func TestExecute_CancelledBookingCannotBeAccepted(t *testing.T) {
	window := time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)
	booking := pendingBooking(window, 30)
	booking.Status = domain.StatusCancelled
	f := newFixture(booking)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Zero(t, f.repo.updateCalls)
}

func TestExecute_WindowCapacityExceeded(t *testing.T) {
	window := time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC)
	f := newFixture(pendingBooking(window, 30))
	f.guard.windowCapacityErr = capacity.ErrWindowCapacityExceeded

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, capacity.ErrWindowCapacityExceeded)
	assert.Zero(t, f.repo.updateCalls)
	assert.Empty(t, f.publisher.routingKeys)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	// Окно 18:30-19:00 за пределами рабочего дня
	window := time.Date(2026, 9, 2, 18, 30, 0, 0, time.UTC)
	f := newFixture(pendingBooking(window, 30))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestMapHoursError_KeepsHoursSentinel(t *testing.T) {
	// Обертка сохраняет исходную ошибку hours: ненастроенное расписание
	// и выходной день различимы через errors.Is
	err := mapHoursError(hours.ErrHoursNotConfigured)
	assert.ErrorIs(t, err, ErrBranchClosed)
	assert.ErrorIs(t, err, hours.ErrHoursNotConfigured)
	assert.NotErrorIs(t, err, hours.ErrClosedThisDay)

	err = mapHoursError(hours.ErrClosedThisDay)
	assert.ErrorIs(t, err, ErrBranchClosed)
	assert.ErrorIs(t, err, hours.ErrClosedThisDay)
	assert.NotErrorIs(t, err, hours.ErrHoursNotConfigured)

	err = mapHoursError(hours.ErrOutsideOperatingHours)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	assert.ErrorIs(t, err, hours.ErrOutsideOperatingHours)
}
