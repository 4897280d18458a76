package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name          string
		input         time.Time
		windowMinutes int
		want          time.Time
	}{
		{
			name:          "середина окна",
			input:         time.Date(2025, 10, 15, 10, 17, 42, 0, time.UTC),
			windowMinutes: 30,
			want:          time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:          "точная граница окна",
			input:         time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
			windowMinutes: 30,
			want:          time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:          "последняя секунда окна",
			input:         time.Date(2025, 10, 15, 10, 59, 59, 0, time.UTC),
			windowMinutes: 30,
			want:          time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:          "окно 15 минут",
			input:         time.Date(2025, 10, 15, 10, 44, 0, 0, time.UTC),
			windowMinutes: 15,
			want:          time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:          "некорректный размер окна - дефолт 30",
			input:         time.Date(2025, 10, 15, 10, 44, 0, 0, time.UTC),
			windowMinutes: 0,
			want:          time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:          "отрицательный размер окна - дефолт 30",
			input:         time.Date(2025, 10, 15, 10, 14, 0, 0, time.UTC),
			windowMinutes: -5,
			want:          time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:          "дата до эпохи - округление вниз",
			input:         time.Date(1969, 12, 31, 23, 45, 0, 0, time.UTC),
			windowMinutes: 30,
			want:          time.Date(1969, 12, 31, 23, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantize(tt.input, tt.windowMinutes)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}

	t.Run("сохраняет локацию входного времени", func(t *testing.T) {
		input := time.Date(2025, 10, 15, 12, 17, 0, 0, msk)
		got := Quantize(input, 30)
		assert.Equal(t, msk.String(), got.Location().String())
		// 12:17 MSK = 09:17 UTC, граница 09:00 UTC = 12:00 MSK
		assert.Equal(t, "12:00", got.Format("15:04"))
	})
}

func TestQuantize_Idempotent(t *testing.T) {
	inputs := []time.Time{
		time.Date(2025, 10, 15, 10, 17, 42, 123456789, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 23, 59, 59, 0, time.FixedZone("MSK", 3*60*60)),
		time.Unix(1, 0),
	}

	for _, windowMinutes := range []int{15, 20, 30, 60} {
		for _, input := range inputs {
			once := Quantize(input, windowMinutes)
			twice := Quantize(once, windowMinutes)
			assert.True(t, once.Equal(twice), "window=%d, input=%v", windowMinutes, input)
		}
	}
}

func TestQuantize_Containment(t *testing.T) {
	for _, windowMinutes := range []int{15, 30, 45, 60} {
		// Перебираем минуты внутри пары часов
		base := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
		for m := 0; m < 120; m += 7 {
			input := base.Add(time.Duration(m)*time.Minute + 13*time.Second)
			start, end := Range(input, windowMinutes)

			require.False(t, start.After(input), "start <= t: window=%d, t=%v, start=%v", windowMinutes, input, start)
			require.True(t, input.Before(end), "t < end: window=%d, t=%v, end=%v", windowMinutes, input, end)
			require.Equal(t, time.Duration(windowMinutes)*time.Minute, end.Sub(start))
		}
	}
}

func TestIsAligned(t *testing.T) {
	assert.True(t, IsAligned(time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC), 30))
	assert.False(t, IsAligned(time.Date(2025, 10, 15, 10, 31, 0, 0, time.UTC), 30))
	assert.False(t, IsAligned(time.Date(2025, 10, 15, 10, 30, 5, 0, time.UTC), 30))
}
