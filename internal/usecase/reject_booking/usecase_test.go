package reject_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/booking"
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

func bookingInStatus(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                 201,
		CustomerID:         42,
		VehicleID:          5,
		BranchID:           7,
		Status:             status,
		ArrivalWindowStart: time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
		WindowMinutes:      30,
	}
}

func newUseCase(repo *fakeBookingRepo, publisher *fakePublisher) *UseCase {
	return NewUseCase(repo, publisher, &fakeTxManager{}, nopLogger{})
}

func TestExecute_RejectsPendingBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: bookingInStatus(domain.StatusPending)}
	publisher := &fakePublisher{}

	resp, err := newUseCase(repo, publisher).Execute(context.Background(), &Request{BookingID: 201, StaffID: 9})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	assert.False(t, resp.AlreadyRejected)
	assert.Equal(t, 1, repo.updateCalls)

	require.Len(t, publisher.routingKeys, 1)
	assert.Equal(t, notifications.RKBookingRejected, publisher.routingKeys[0])
}

func TestExecute_RepeatedRejectIsNoop(t *testing.T) {
	repo := &fakeBookingRepo{booking: bookingInStatus(domain.StatusRejected)}
	publisher := &fakePublisher{}

	resp, err := newUseCase(repo, publisher).Execute(context.Background(), &Request{BookingID: 201, StaffID: 9})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyRejected)
	assert.Equal(t, 0, repo.updateCalls)
	assert.Empty(t, publisher.routingKeys)
}

func TestExecute_AcceptedCannotBeRejected(t *testing.T) {
	repo := &fakeBookingRepo{booking: bookingInStatus(domain.StatusAccepted)}

	_, err := newUseCase(repo, &fakePublisher{}).Execute(context.Background(), &Request{BookingID: 201, StaffID: 9})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{}

	_, err := newUseCase(repo, &fakePublisher{}).Execute(context.Background(), &Request{BookingID: 201, StaffID: 9})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidBookingID(t *testing.T) {
	_, err := newUseCase(&fakeBookingRepo{}, &fakePublisher{}).Execute(context.Background(), &Request{BookingID: 0, StaffID: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
