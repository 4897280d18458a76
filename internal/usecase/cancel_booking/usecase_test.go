package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	"github.com/m04kA/SMC-ArrivalService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	cancelCalls int
	cancelledBy int64
	reason      *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *f.booking
	return &clone, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, cancelledBy int64, reason *string) error {
	f.cancelCalls++
	f.cancelledBy = cancelledBy
	f.reason = reason
	f.booking.Status = domain.StatusCancelled
	return nil
}

type fakeIdentityClient struct {
	isStaff bool
	err     error
}

func (f *fakeIdentityClient) IsBranchStaff(_ context.Context, _, _ int64) (bool, error) {
	return f.isStaff, f.err
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

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окно прибытия 10:00-10:30, отсечка 30 минут, дедлайн отмены 09:30
var arrivalWindow = time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 101,
		CustomerID:         42,
		VehicleID:          5,
		BranchID:           7,
		Status:             domain.StatusPending,
		ArrivalWindowStart: arrivalWindow,
		WindowMinutes:      30,
	}
}

type fixture struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	identity  *fakeIdentityClient
	publisher *fakePublisher
}

func newFixture(booking *domain.Booking, now time.Time) *fixture {
	f := &fixture{
		repo:      &fakeBookingRepo{booking: booking},
		identity:  &fakeIdentityClient{},
		publisher: &fakePublisher{},
	}
	f.uc = NewUseCase(f.repo, f.identity, f.publisher, &fakeTxManager{}, domain.DefaultLimits(), nopLogger{})
	f.uc.timeProvider = &fakeTimeProvider{now: now}
	return f
}

func TestExecute_OwnerCancelsBeforeCutoff(t *testing.T) {
	// 09:29 - за 31 минуту до окна
	f := newFixture(pendingBooking(), arrivalWindow.Add(-31*time.Minute))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42, Reason: ptr.Ptr("передумал")})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, int64(42), resp.CancelledBy)
	assert.Equal(t, 1, f.repo.cancelCalls)

	require.Len(t, f.publisher.routingKeys, 1)
	assert.Equal(t, notifications.RKBookingCancelled, f.publisher.routingKeys[0])
}

func TestExecute_OwnerCancelsExactlyAtCutoff(t *testing.T) {
	// Ровно 09:30 - граница еще допустима
	f := newFixture(pendingBooking(), arrivalWindow.Add(-30*time.Minute))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42})
	require.NoError(t, err)
}

func TestExecute_OwnerTooLateToCancel(t *testing.T) {
	// 09:31 - за 29 минут до окна
	f := newFixture(pendingBooking(), arrivalWindow.Add(-29*time.Minute))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Zero(t, f.repo.cancelCalls)
	assert.Empty(t, f.publisher.routingKeys)
}

func TestExecute_StaffCancelsAfterCutoff(t *testing.T) {
	// Сотрудник филиала может отменить и после дедлайна
	f := newFixture(pendingBooking(), arrivalWindow.Add(-5*time.Minute))
	f.identity.isStaff = true

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.CancelledBy)
}

func TestExecute_StrangerAccessDenied(t *testing.T) {
	f := newFixture(pendingBooking(), arrivalWindow.Add(-2*time.Hour))
	f.identity.isStaff = false

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 777})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, f.repo.cancelCalls)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCancelled
	f := newFixture(booking, arrivalWindow.Add(-2*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_CompletedCannotBeCancelled(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(booking, arrivalWindow.Add(-2*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestExecute_ArrivedCannotBeCancelled(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusArrived
	f := newFixture(booking, arrivalWindow.Add(-2*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(nil, arrivalWindow.Add(-2*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 101, ActorID: 42})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
