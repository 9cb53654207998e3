package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderWindow_Contains(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2025, 10, 6, 14, 15, 0, 0, loc)
	window := ComputeWindow(now, 15*time.Minute)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{
			name:  "lesson exactly lookahead away is included",
			start: time.Date(2025, 10, 6, 14, 30, 0, 0, loc),
			want:  true,
		},
		{
			name:  "lesson one minute past lookahead is excluded",
			start: time.Date(2025, 10, 6, 14, 31, 0, 0, loc),
			want:  false,
		},
		{
			name:  "lesson already started is excluded",
			start: time.Date(2025, 10, 6, 14, 14, 0, 0, loc),
			want:  false,
		},
		{
			name:  "lesson starting right now is excluded",
			start: now,
			want:  false,
		},
		{
			name:  "lesson one minute out is included",
			start: time.Date(2025, 10, 6, 14, 16, 0, 0, loc),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.start))
		})
	}
}

func TestReminderWindow_OneSecondBeforeBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	lessonStart := time.Date(2025, 10, 6, 14, 30, 0, 0, loc)

	// В 14:14:59 урок на 14:30 ещё за пределами 15-минутного окна
	early := ComputeWindow(time.Date(2025, 10, 6, 14, 14, 59, 0, loc), 15*time.Minute)
	assert.False(t, early.Contains(lessonStart))

	// Тик в 14:15:00 его подхватывает
	onTime := ComputeWindow(time.Date(2025, 10, 6, 14, 15, 0, 0, loc), 15*time.Minute)
	assert.True(t, onTime.Contains(lessonStart))
}
