package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	s, err := New(time.UTC, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Stop()
	})

	return s
}

func TestScheduler_UpsertCronIsIdempotent(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.UpsertCron("reminder_check", "0 * * * * *", func() {}))
	require.NoError(t, s.UpsertCron("reminder_check", "0 * * * * *", func() {}))

	assert.Equal(t, []string{"reminder_check"}, s.JobNames())
}

func TestScheduler_ScheduleAtReplacesSameName(t *testing.T) {
	s := newTestScheduler(t)

	at := time.Now().Add(time.Hour)

	require.NoError(t, s.ScheduleAt("custom_reminder_42_100", at, func() {}))
	require.NoError(t, s.ScheduleAt("custom_reminder_42_100", at, func() {}))

	assert.Equal(t, []string{"custom_reminder_42_100"}, s.JobNames())
}

func TestScheduler_ScheduleAtRejectsPastTime(t *testing.T) {
	s := newTestScheduler(t)

	err := s.ScheduleAt("custom_reminder_42_1", time.Now().Add(-time.Minute), func() {})
	require.Error(t, err)
	assert.Empty(t, s.JobNames())
}

func TestScheduler_CancelUnknownJobReturnsFalse(t *testing.T) {
	s := newTestScheduler(t)

	assert.False(t, s.Cancel("nonexistent-job"))
}

func TestScheduler_CancelRemovesPendingJob(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.ScheduleAt("custom_reminder_7_50", time.Now().Add(time.Hour), func() {}))

	assert.True(t, s.Cancel("custom_reminder_7_50"))
	assert.Empty(t, s.JobNames())

	// Повторная отмена уже снятой задачи
	assert.False(t, s.Cancel("custom_reminder_7_50"))
}

func TestScheduler_OneShotJobFires(t *testing.T) {
	s := newTestScheduler(t)
	s.Start()

	fired := make(chan struct{})
	require.NoError(t, s.ScheduleAt("custom_reminder_1_1", time.Now().Add(150*time.Millisecond), func() {
		close(fired)
	}))

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("one-shot job did not fire")
	}

	// Выполнившаяся задача уходит из таблицы, её отмена возвращает false
	assert.Eventually(t, func() bool {
		return len(s.JobNames()) == 0
	}, time.Second, 10*time.Millisecond)
	assert.False(t, s.Cancel("custom_reminder_1_1"))
}
