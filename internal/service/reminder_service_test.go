package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/model"
	"github.com/ovoronina/tutor_bot/internal/scheduler"
)

type fakeLessonStore struct {
	lessons []*model.UpcomingLesson
	err     error
}

func (f *fakeLessonStore) GetUpcomingLessons(_ context.Context, _ time.Time, _ time.Duration) ([]*model.UpcomingLesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lessons, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error // chatID -> ошибка отправки
}

func (f *fakeNotifier) SendMessage(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[chatID]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeNotifier) chatIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.sent))
	for _, m := range f.sent {
		ids = append(ids, m.chatID)
	}
	return ids
}

func chatID(id int64) *int64 { return &id }

func testLesson(id int64, loc *time.Location) *model.UpcomingLesson {
	return &model.UpcomingLesson{
		ID:         id,
		LessonDate: time.Date(2025, 10, 6, 0, 0, 0, 0, loc),
		LessonTime: time.Date(2025, 10, 6, 14, 30, 0, 0, loc),
		Subject:    "Математика",
		Teacher: model.Participant{
			FirstName:       "Анна",
			LastName:        "Петрова",
			TelegramID:      chatID(100),
			ReminderEnabled: true,
		},
		Student: model.Participant{
			FirstName:       "Иван",
			LastName:        "Сидоров",
			TelegramID:      chatID(200),
			ReminderEnabled: true,
		},
	}
}

func newTestReminderService(t *testing.T, store LessonStore, notifier Notifier) *ReminderService {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	sched, err := scheduler.New(loc, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Stop() })

	s := NewReminderService(store, notifier, sched, loc, 15, zap.NewNop())
	s.now = func() time.Time {
		return time.Date(2025, 10, 6, 14, 15, 0, 0, loc)
	}
	return s
}

func TestCheckReminders_NotifiesBothParticipants(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	store := &fakeLessonStore{lessons: []*model.UpcomingLesson{testLesson(1, loc)}}
	notifier := &fakeNotifier{}

	s := newTestReminderService(t, store, notifier)
	report := s.CheckReminders(context.Background())

	require.NoError(t, report.QueryErr)
	assert.Equal(t, 2, report.Sent())
	require.Len(t, notifier.sent, 2)
	assert.ElementsMatch(t, []int64{100, 200}, notifier.chatIDs())

	for _, msg := range notifier.sent {
		assert.Contains(t, msg.text, "14:30")
		assert.Contains(t, msg.text, "Математика")
		assert.Contains(t, msg.text, "через 15 минут")
	}

	// Учителю пишем про ученика, ученику про учителя
	for _, msg := range notifier.sent {
		switch msg.chatID {
		case 100:
			assert.Contains(t, msg.text, "Иван Сидоров")
		case 200:
			assert.Contains(t, msg.text, "Анна Петрова")
		}
	}
}

func TestCheckReminders_OptOutSkipped(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	lesson := testLesson(1, loc)
	lesson.Teacher.ReminderEnabled = false

	store := &fakeLessonStore{lessons: []*model.UpcomingLesson{lesson}}
	notifier := &fakeNotifier{}

	s := newTestReminderService(t, store, notifier)
	report := s.CheckReminders(context.Background())

	require.NoError(t, report.QueryErr)
	assert.Equal(t, []int64{200}, notifier.chatIDs())

	require.Len(t, report.Deliveries, 2)
	assert.Equal(t, DeliverySkippedOptOut, report.Deliveries[0].Status)
	assert.Equal(t, DeliverySent, report.Deliveries[1].Status)
}

func TestCheckReminders_UnlinkedAccountSkipped(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	lesson := testLesson(1, loc)
	lesson.Student.TelegramID = nil

	store := &fakeLessonStore{lessons: []*model.UpcomingLesson{lesson}}
	notifier := &fakeNotifier{}

	s := newTestReminderService(t, store, notifier)
	report := s.CheckReminders(context.Background())

	require.NoError(t, report.QueryErr)
	assert.Equal(t, []int64{100}, notifier.chatIDs())
	assert.Equal(t, 0, report.Failed())

	require.Len(t, report.Deliveries, 2)
	assert.Equal(t, DeliverySkippedUnlinked, report.Deliveries[1].Status)
}

func TestCheckReminders_DeliveryFailureIsIsolated(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	lessonA := testLesson(1, loc)
	lessonB := testLesson(2, loc)
	lessonB.Teacher.TelegramID = chatID(300)
	lessonB.Student.TelegramID = chatID(400)

	store := &fakeLessonStore{lessons: []*model.UpcomingLesson{lessonA, lessonB}}
	notifier := &fakeNotifier{
		failFor: map[int64]error{100: errors.New("telegram: chat not found")},
	}

	s := newTestReminderService(t, store, notifier)
	report := s.CheckReminders(context.Background())

	require.NoError(t, report.QueryErr)

	// Ошибка у учителя урока A не мешает ученику A и обоим участникам B
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 3, report.Sent())
	assert.ElementsMatch(t, []int64{200, 300, 400}, notifier.chatIDs())
}

func TestCheckReminders_QueryErrorAbortsTick(t *testing.T) {
	store := &fakeLessonStore{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}

	s := newTestReminderService(t, store, notifier)
	report := s.CheckReminders(context.Background())

	require.Error(t, report.QueryErr)
	assert.Empty(t, report.Deliveries)
	assert.Empty(t, notifier.sent)
}

func TestCheckReminders_LessonRemindedOncePerDay(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	store := &fakeLessonStore{lessons: []*model.UpcomingLesson{testLesson(1, loc)}}
	notifier := &fakeNotifier{}

	s := newTestReminderService(t, store, notifier)

	first := s.CheckReminders(context.Background())
	assert.Equal(t, 2, first.Sent())

	// Окно шире минутного интервала опроса: на следующем тике тот же урок
	// снова в выборке, но рассылка не повторяется
	second := s.CheckReminders(context.Background())
	assert.Equal(t, 0, second.Sent())
	require.Len(t, second.Deliveries, 1)
	assert.Equal(t, DeliverySkippedDup, second.Deliveries[0].Status)

	assert.Len(t, notifier.sent, 2)
}

func TestStart_IsIdempotent(t *testing.T) {
	store := &fakeLessonStore{}
	notifier := &fakeNotifier{}

	s := newTestReminderService(t, store, notifier)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())

	assert.Equal(t, []string{"reminder_check"}, s.GetScheduledJobs())
}

func TestStop_WithoutStartIsNoop(t *testing.T) {
	s := newTestReminderService(t, &fakeLessonStore{}, &fakeNotifier{})

	s.Stop()
	s.Stop()

	assert.Empty(t, s.GetScheduledJobs())
}

func TestScheduleCustomReminder_DeterministicJobID(t *testing.T) {
	s := newTestReminderService(t, &fakeLessonStore{}, &fakeNotifier{})

	at := time.Now().Add(time.Hour).Truncate(time.Second)

	first, err := s.ScheduleCustomReminder(42, "x", at)
	require.NoError(t, err)

	second, err := s.ScheduleCustomReminder(42, "x", at)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{first}, s.GetScheduledJobs())
}

func TestScheduleCustomReminder_RejectsPastTime(t *testing.T) {
	s := newTestReminderService(t, &fakeLessonStore{}, &fakeNotifier{})

	jobID, err := s.ScheduleCustomReminder(42, "x", time.Now().Add(-time.Minute))
	require.Error(t, err)
	assert.Empty(t, jobID)
	assert.Empty(t, s.GetScheduledJobs())
}

func TestCancelReminder_UnknownJobReturnsFalse(t *testing.T) {
	s := newTestReminderService(t, &fakeLessonStore{}, &fakeNotifier{})

	assert.False(t, s.CancelReminder("nonexistent-job"))
}

func TestCancelReminder_RemovesPendingJob(t *testing.T) {
	s := newTestReminderService(t, &fakeLessonStore{}, &fakeNotifier{})

	jobID, err := s.ScheduleCustomReminder(7, "позвонить маме", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, s.CancelReminder(jobID))
	assert.Empty(t, s.GetScheduledJobs())
}
