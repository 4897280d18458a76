package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArrivalService/internal/capacity"
	"github.com/m04kA/SMC-ArrivalService/internal/domain"
	"github.com/m04kA/SMC-ArrivalService/internal/hours"
	scheduleRepo "github.com/m04kA/SMC-ArrivalService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/notifications"
	"github.com/m04kA/SMC-ArrivalService/internal/integrations/vehicleservice"
	"github.com/m04kA/SMC-ArrivalService/pkg/ptr"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b.ID = 101
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return b, nil
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
	activeCeilingErr error
	singleActiveErr  error
	notInRepairErr   error
	dailyCeilingErr  error
	duplicateSlotErr error
}

func (f *fakeGuard) CheckActiveRequestCeiling(_ context.Context, _ int64, _ int) error {
	return f.activeCeilingErr
}

func (f *fakeGuard) CheckVehicleSingleActive(_ context.Context, _ int64) error {
	return f.singleActiveErr
}

func (f *fakeGuard) CheckVehicleNotInRepair(_ context.Context, _ int64) error {
	return f.notInRepairErr
}

func (f *fakeGuard) CheckDailyVehicleCeiling(_ context.Context, _ int64, _ time.Time, _ int) error {
	return f.dailyCeilingErr
}

func (f *fakeGuard) CheckDuplicateSlot(_ context.Context, _, _, _ int64, _ time.Time) error {
	return f.duplicateSlotErr
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

type fakeVehicleClient struct {
	vehicle *vehicleservice.Vehicle
	err     error
}

func (f *fakeVehicleClient) GetVehicle(_ context.Context, _ int64) (*vehicleservice.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vehicle, nil
}

type fakePublisher struct {
	routingKeys []string
	events      []notifications.BookingEvent
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, routingKey string, event notifications.BookingEvent) {
	f.routingKeys = append(f.routingKeys, routingKey)
	f.events = append(f.events, event)
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

// testBranch филиал, работающий по будням с 08:00 до 18:00
func testBranch() *branchservice.Branch {
	day := branchservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("18:00"),
	}
	return &branchservice.Branch{
		ID:     7,
		Name:   "Центральный филиал",
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

func testVehicle() *vehicleservice.Vehicle {
	return &vehicleservice.Vehicle{
		ID:           5,
		OwnerID:      42,
		Brand:        "Toyota",
		Model:        "Camry",
		LicensePlate: "А123ВС77",
	}
}

type fixture struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	guard     *fakeGuard
	publisher *fakePublisher
	branch    *fakeBranchClient
	vehicle   *fakeVehicleClient
	schedule  *fakeScheduleRepo
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		repo:      &fakeBookingRepo{},
		guard:     &fakeGuard{},
		publisher: &fakePublisher{},
		branch:    &fakeBranchClient{branch: testBranch()},
		vehicle:   &fakeVehicleClient{vehicle: testVehicle()},
		schedule:  &fakeScheduleRepo{},
	}
	f.uc = NewUseCase(
		f.repo, f.schedule, f.guard, f.branch, f.vehicle, f.publisher,
		&fakeTxManager{}, domain.DefaultLimits(), nopLogger{},
	)
	f.uc.timeProvider = &fakeTimeProvider{now: now}
	return f
}

func validRequest(requestedTime time.Time) *Request {
	return &Request{
		CustomerID:    42,
		VehicleID:     5,
		BranchID:      7,
		RequestedTime: requestedTime,
		Description:   "Стук в передней подвеске",
	}
}

func TestExecute_QuantizesRequestedTime(t *testing.T) {
	// Среда, 2 сентября 2026
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// 10:17 должно нормализоваться к окну 10:00 при 30-минутных окнах
	resp, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 17, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), resp.ArrivalWindowStart)
	assert.Equal(t, 30, resp.WindowMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 17, 0, 0, time.UTC), resp.RequestedTime)

	require.NotNil(t, f.repo.created)
	assert.Equal(t, domain.StatusPending, f.repo.created.Status)
	require.NotNil(t, f.repo.created.VehiclePlate)
	assert.Equal(t, "А123ВС77", *f.repo.created.VehiclePlate)

	require.Len(t, f.publisher.routingKeys, 1)
	assert.Equal(t, notifications.RKBookingCreated, f.publisher.routingKeys[0])
}

func TestExecute_SlotInPast(t *testing.T) {
	now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Окно 10:00-10:30 уже закончилось
	_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 17, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_CurrentWindowStillBookable(t *testing.T) {
	// Сейчас 10:20, окно 10:00-10:30 еще не закончилось
	now := time.Date(2026, 9, 2, 10, 20, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 5, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), resp.ArrivalWindowStart)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// 17:45 при 30-минутном окне дает окно 17:30-18:00 - еще допустимо
	_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 17, 45, 0, 0, time.UTC)))
	require.NoError(t, err)

	// 18:10 дает окно 18:00-18:30 - уже за пределами рабочего дня
	f = newFixture(now)
	_, err = f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 18, 10, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecute_BranchClosedOnSunday(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Воскресенье, 6 сентября 2026 - расписание не настроено
	_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrBranchClosed)
}

func TestExecute_BranchInactive(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.branch.branch.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrBranchInactive)
}

func TestExecute_BranchNotFound(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.branch.branch = nil
	f.branch.err = branchservice.ErrBranchNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_VehicleNotOwned(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.vehicle.vehicle.OwnerID = 99

	_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrVehicleNotOwned)
}

func TestExecute_GuardViolationsPassThrough(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		prepare func(g *fakeGuard)
		wantErr error
	}{
		{
			name:    "active ceiling",
			prepare: func(g *fakeGuard) { g.activeCeilingErr = capacity.ErrActiveRequestLimitExceeded },
			wantErr: capacity.ErrActiveRequestLimitExceeded,
		},
		{
			name:    "vehicle already active",
			prepare: func(g *fakeGuard) { g.singleActiveErr = capacity.ErrVehicleAlreadyHasActiveRequest },
			wantErr: capacity.ErrVehicleAlreadyHasActiveRequest,
		},
		{
			name:    "vehicle in repair",
			prepare: func(g *fakeGuard) { g.notInRepairErr = capacity.ErrVehicleUnderActiveRepair },
			wantErr: capacity.ErrVehicleUnderActiveRepair,
		},
		{
			name:    "daily ceiling",
			prepare: func(g *fakeGuard) { g.dailyCeilingErr = capacity.ErrDailyVehicleLimitExceeded },
			wantErr: capacity.ErrDailyVehicleLimitExceeded,
		},
		{
			name:    "duplicate slot",
			prepare: func(g *fakeGuard) { g.duplicateSlotErr = capacity.ErrDuplicateSlotRequest },
			wantErr: capacity.ErrDuplicateSlotRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(now)
			tt.prepare(f.guard)

			_, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.repo.created)
			assert.Empty(t, f.publisher.routingKeys)
		})
	}
}

func TestExecute_UsesBranchConfigWindow(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.schedule.cfg = &domain.BranchScheduleConfig{
		BranchID:      7,
		WindowMinutes: 60,
		MaxPerWindow:  3,
		Active:        true,
	}

	resp, err := f.uc.Execute(context.Background(), validRequest(time.Date(2026, 9, 2, 10, 45, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), resp.ArrivalWindowStart)
	assert.Equal(t, 60, resp.WindowMinutes)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC))
	req.Description = "   "

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
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
