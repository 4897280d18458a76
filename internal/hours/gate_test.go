package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
)

func workday() *domain.OperatingHour {
	return &domain.OperatingHour{
		BranchID:  1,
		Weekday:   time.Wednesday,
		Open:      true,
		OpenTime:  "08:00",
		CloseTime: "12:00",
	}
}

func TestResolveOpenClose(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) // среда

	t.Run("обычный рабочий день", func(t *testing.T) {
		open, close, err := ResolveOpenClose(workday(), date)
		require.NoError(t, err)
		assert.True(t, open.Equal(time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)))
		assert.True(t, close.Equal(time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("расписание не настроено", func(t *testing.T) {
		_, _, err := ResolveOpenClose(nil, date)
		assert.ErrorIs(t, err, ErrHoursNotConfigured)
	})

	t.Run("выходной день", func(t *testing.T) {
		oh := workday()
		oh.Open = false
		_, _, err := ResolveOpenClose(oh, date)
		assert.ErrorIs(t, err, ErrClosedThisDay)
	})

	t.Run("время не задано", func(t *testing.T) {
		oh := workday()
		oh.OpenTime = ""
		_, _, err := ResolveOpenClose(oh, date)
		assert.ErrorIs(t, err, ErrClosedThisDay)
	})

	t.Run("открытие не раньше закрытия", func(t *testing.T) {
		oh := workday()
		oh.OpenTime = "12:00"
		oh.CloseTime = "08:00"
		_, _, err := ResolveOpenClose(oh, date)
		assert.ErrorIs(t, err, ErrClosedThisDay)
	})

	t.Run("смещение филиала сохраняется", func(t *testing.T) {
		msk := time.FixedZone("MSK", 3*60*60)
		localDate := time.Date(2025, 10, 15, 0, 0, 0, 0, msk)
		open, _, err := ResolveOpenClose(workday(), localDate)
		require.NoError(t, err)
		assert.Equal(t, msk.String(), open.Location().String())
		assert.Equal(t, "08:00", open.Format("15:04"))
	})
}

func TestEnsureWithinHours(t *testing.T) {
	tests := []struct {
		name        string
		windowStart time.Time
		wantErr     error
	}{
		{
			name:        "первое окно дня",
			windowStart: time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:        "последнее окно дня",
			windowStart: time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC),
		},
		{
			name:        "окно до открытия",
			windowStart: time.Date(2025, 10, 15, 7, 30, 0, 0, time.UTC),
			wantErr:     ErrOutsideOperatingHours,
		},
		{
			name:        "окно заканчивается после закрытия",
			windowStart: time.Date(2025, 10, 15, 11, 45, 0, 0, time.UTC),
			wantErr:     ErrOutsideOperatingHours,
		},
		{
			name:        "окно после закрытия",
			windowStart: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
			wantErr:     ErrOutsideOperatingHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureWithinHours(workday(), tt.windowStart, 30)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
