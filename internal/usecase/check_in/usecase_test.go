package check_in

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	updateCalls int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *f.booking
	return &clone, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.booking.Status = status
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
	wipErr     error
	wipChecked bool
	checkedMax int
}

func (f *fakeGuard) CheckWipCapacity(_ context.Context, _ int64, maxWip int) error {
	f.wipChecked = true
	f.checkedMax = maxWip
	return f.wipErr
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

func acceptedBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 101,
		CustomerID:         42,
		VehicleID:          5,
		BranchID:           7,
		Status:             domain.StatusAccepted,
		ArrivalWindowStart: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		WindowMinutes:      30,
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
	f.uc = NewUseCase(f.repo, f.schedule, f.guard, f.publisher, &fakeTxManager{}, nopLogger{})
	return f
}

func TestExecute_MarksAcceptedBookingAsArrived(t *testing.T) {
	f := newFixture(acceptedBooking())

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusArrived), resp.Status)
	assert.False(t, resp.AlreadyArrived)
	assert.Equal(t, 1, f.repo.updateCalls)

	require.Len(t, f.publisher.routingKeys, 1)
	assert.Equal(t, notifications.RKBookingArrived, f.publisher.routingKeys[0])
}

func TestExecute_IdempotentWhenAlreadyArrived(t *testing.T) {
	booking := acceptedBooking()
	booking.Status = domain.StatusArrived
	f := newFixture(booking)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyArrived)
	assert.Zero(t, f.repo.updateCalls)
	assert.Empty(t, f.publisher.routingKeys)
}

func TestExecute_PendingBookingCannotCheckIn(t *testing.T) {
	booking := acceptedBooking()
	booking.Status = domain.StatusPending
	f := newFixture(booking)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestExecute_WipLimitEnforced(t *testing.T) {
	f := newFixture(acceptedBooking())
	f.schedule.cfg = &domain.BranchScheduleConfig{
		BranchID:      7,
		WindowMinutes: 30,
		MaxPerWindow:  2,
		MaxWip:        4,
		EnforceWip:    true,
		Active:        true,
	}
	f.guard.wipErr = capacity.ErrWipCapacityExceeded

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, capacity.ErrWipCapacityExceeded)
	assert.True(t, f.guard.wipChecked)
	assert.Equal(t, 4, f.guard.checkedMax)
	assert.Zero(t, f.repo.updateCalls)
}

func TestExecute_WipLimitSkippedWhenDisabled(t *testing.T) {
	f := newFixture(acceptedBooking())
	// Лимит задан, но не включен
	f.schedule.cfg = &domain.BranchScheduleConfig{
		BranchID:      7,
		WindowMinutes: 30,
		MaxPerWindow:  2,
		MaxWip:        4,
		EnforceWip:    false,
		Active:        true,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	require.NoError(t, err)
	assert.False(t, f.guard.wipChecked)
	assert.Equal(t, string(domain.StatusArrived), resp.Status)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, StaffID: 9})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
