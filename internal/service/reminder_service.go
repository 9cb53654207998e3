package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/model"
	"github.com/ovoronina/tutor_bot/internal/scheduler"
)

// Имя периодической задачи проверки напоминаний
const reminderCheckJob = "reminder_check"

// Раз в минуту на нулевой секунде
const reminderCheckCron = "0 * * * * *"

// LessonStore источник уроков для напоминаний
type LessonStore interface {
	GetUpcomingLessons(ctx context.Context, now time.Time, lookahead time.Duration) ([]*model.UpcomingLesson, error)
}

// Notifier канал доставки сообщений пользователю
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// DeliveryStatus результат попытки доставки одного напоминания
type DeliveryStatus string

const (
	DeliverySent            DeliveryStatus = "sent"
	DeliverySkippedOptOut   DeliveryStatus = "skipped_opt_out"   // Напоминания выключены
	DeliverySkippedUnlinked DeliveryStatus = "skipped_unlinked"  // Telegram не привязан
	DeliverySkippedDup      DeliveryStatus = "skipped_duplicate" // Урок уже обработан сегодня
	DeliveryFailed          DeliveryStatus = "failed"
)

// Delivery одна попытка доставки напоминания участнику урока
type Delivery struct {
	LessonID int64
	Role     model.UserRole
	ChatID   int64
	Status   DeliveryStatus
	Err      error
}

// TickReport итог одного прохода проверки напоминаний.
// Ошибки не всплывают выше: сервис логирует отчёт в одной точке,
// а тесты проверяют классификацию напрямую.
type TickReport struct {
	QueryErr   error
	Deliveries []Delivery
}

// Sent возвращает количество успешно отправленных напоминаний
func (r TickReport) Sent() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Status == DeliverySent {
			n++
		}
	}
	return n
}

// Failed возвращает количество неудачных попыток
func (r TickReport) Failed() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Status == DeliveryFailed {
			n++
		}
	}
	return n
}

// ReminderService рассылает напоминания о скорых уроках и управляет
// одноразовыми пользовательскими напоминаниями.
type ReminderService struct {
	lessons  LessonStore
	notifier Notifier
	sched    *scheduler.Scheduler
	logger   *zap.Logger

	loc       *time.Location
	lookahead time.Duration
	now       func() time.Time // Подменяется в тестах

	mu       sync.Mutex
	reminded map[int64]string // ID урока -> дата, когда урок уже обработан
}

func NewReminderService(
	lessons LessonStore,
	notifier Notifier,
	sched *scheduler.Scheduler,
	loc *time.Location,
	reminderMinutes int,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		lessons:   lessons,
		notifier:  notifier,
		sched:     sched,
		logger:    logger,
		loc:       loc,
		lookahead: time.Duration(reminderMinutes) * time.Minute,
		now:       time.Now,
		reminded:  make(map[int64]string),
	}
}

// Start регистрирует периодическую проверку напоминаний.
// Повторный вызов заменяет задачу, дубликат не появляется.
func (s *ReminderService) Start() error {
	err := s.sched.UpsertCron(reminderCheckJob, reminderCheckCron, s.runTick)
	if err != nil {
		return fmt.Errorf("start reminder service: %w", err)
	}

	s.logger.Info("Reminder service started",
		zap.Duration("lookahead", s.lookahead))
	return nil
}

// Stop снимает периодическую проверку. Если она не запущена — ничего не делает.
// Уже начавшаяся рассылка не прерывается.
func (s *ReminderService) Stop() {
	if s.sched.Cancel(reminderCheckJob) {
		s.logger.Info("Reminder service stopped")
	}
}

// runTick один тик проверки: выполняет проход и логирует итог.
// Единственная точка логирования результатов рассылки.
func (s *ReminderService) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
	defer cancel()

	report := s.CheckReminders(ctx)

	if report.QueryErr != nil {
		s.logger.Error("Reminder check failed", zap.Error(report.QueryErr))
		return
	}

	for _, d := range report.Deliveries {
		switch d.Status {
		case DeliverySent:
			s.logger.Info("Reminder sent",
				zap.Int64("lesson_id", d.LessonID),
				zap.String("role", string(d.Role)),
				zap.Int64("chat_id", d.ChatID))
		case DeliveryFailed:
			s.logger.Error("Reminder delivery failed",
				zap.Int64("lesson_id", d.LessonID),
				zap.String("role", string(d.Role)),
				zap.Int64("chat_id", d.ChatID),
				zap.Error(d.Err))
		}
	}

	if len(report.Deliveries) > 0 {
		s.logger.Info("Reminder check completed",
			zap.Int("sent", report.Sent()),
			zap.Int("failed", report.Failed()))
	}
}

// CheckReminders выполняет один проход: запрашивает уроки в окне напоминаний
// и пытается доставить напоминание каждому участнику. Ошибка доставки одному
// получателю не мешает ни второму участнику, ни остальным урокам.
func (s *ReminderService) CheckReminders(ctx context.Context) TickReport {
	now := s.now().In(s.loc)

	upcoming, err := s.lessons.GetUpcomingLessons(ctx, now, s.lookahead)
	if err != nil {
		return TickReport{QueryErr: fmt.Errorf("get upcoming lessons: %w", err)}
	}

	var report TickReport
	for _, lesson := range upcoming {
		if s.alreadyReminded(lesson.ID, now) {
			report.Deliveries = append(report.Deliveries, Delivery{
				LessonID: lesson.ID,
				Status:   DeliverySkippedDup,
			})
			continue
		}

		report.Deliveries = append(report.Deliveries,
			s.deliver(ctx, lesson, model.RoleTeacher),
			s.deliver(ctx, lesson, model.RoleStudent),
		)

		// Урок помечается обработанным независимо от исхода доставки:
		// повторных попыток в следующих тиках не делаем
		s.markReminded(lesson.ID, now)
	}

	return report
}

// deliver отправляет напоминание одному участнику урока
func (s *ReminderService) deliver(ctx context.Context, lesson *model.UpcomingLesson, role model.UserRole) Delivery {
	participant := lesson.ParticipantByRole(role)

	d := Delivery{LessonID: lesson.ID, Role: role}

	if !participant.ReminderEnabled {
		d.Status = DeliverySkippedOptOut
		return d
	}
	if participant.TelegramID == nil {
		d.Status = DeliverySkippedUnlinked
		return d
	}

	d.ChatID = *participant.TelegramID

	if err := s.notifier.SendMessage(ctx, d.ChatID, s.formatReminder(lesson, role)); err != nil {
		d.Status = DeliveryFailed
		d.Err = err
		return d
	}

	d.Status = DeliverySent
	return d
}

// formatReminder собирает текст напоминания для участника урока
func (s *ReminderService) formatReminder(lesson *model.UpcomingLesson, role model.UserRole) string {
	subject := lesson.Subject
	if subject == "" {
		subject = "Урок"
	}

	counterpart := lesson.CounterpartByRole(role)
	counterpartLabel := "👨‍🎓 Ученик"
	if role == model.RoleStudent {
		counterpartLabel = "👨‍🏫 Учитель"
	}

	var b strings.Builder
	b.WriteString("🔔 Напоминание об уроке\n\n")
	b.WriteString(fmt.Sprintf("📚 Предмет: %s\n", subject))
	b.WriteString(fmt.Sprintf("🕐 Время: %s\n", lesson.LessonTime.Format("15:04")))
	b.WriteString(fmt.Sprintf("%s: %s\n\n", counterpartLabel, counterpart.FullName()))
	b.WriteString(fmt.Sprintf("Урок начнётся через %d минут!", int(s.lookahead.Minutes())))
	return b.String()
}

// alreadyReminded проверяет не обработан ли урок в один из предыдущих тиков.
// Окно шире интервала опроса, без отметки урок попадал бы в рассылку
// несколько раз подряд.
func (s *ReminderService) alreadyReminded(lessonID int64, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, ok := s.reminded[lessonID]
	return ok && date == now.Format("2006-01-02")
}

// markReminded помечает урок обработанным и вычищает отметки прошлых дней
func (s *ReminderService) markReminded(lessonID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := now.Format("2006-01-02")
	for id, date := range s.reminded {
		if date != today {
			delete(s.reminded, id)
		}
	}
	s.reminded[lessonID] = today
}

// ScheduleCustomReminder регистрирует одноразовое напоминание на точное время.
// Идентификатор детерминирован: повторная регистрация той же пары
// (получатель, время) заменяет задачу, а не дублирует её.
func (s *ReminderService) ScheduleCustomReminder(telegramID int64, message string, at time.Time) (string, error) {
	jobID := fmt.Sprintf("custom_reminder_%d_%d", telegramID, at.Unix())

	err := s.sched.ScheduleAt(jobID, at, func() {
		s.sendCustomReminder(telegramID, message)
	})
	if err != nil {
		return "", fmt.Errorf("schedule custom reminder: %w", err)
	}

	return jobID, nil
}

// sendCustomReminder тело одноразовой задачи: одна попытка отправки,
// неудача логируется и не повторяется
func (s *ReminderService) sendCustomReminder(telegramID int64, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text := "🔔 Напоминание\n\n" + message

	if err := s.notifier.SendMessage(ctx, telegramID, text); err != nil {
		s.logger.Error("Custom reminder delivery failed",
			zap.Int64("chat_id", telegramID),
			zap.Error(err))
		return
	}

	s.logger.Info("Custom reminder sent", zap.Int64("chat_id", telegramID))
}

// CancelReminder снимает одноразовое напоминание.
// Для неизвестной или уже выполнившейся задачи возвращает false.
func (s *ReminderService) CancelReminder(jobID string) bool {
	return s.sched.Cancel(jobID)
}

// GetScheduledJobs возвращает имена всех зарегистрированных задач,
// включая периодическую проверку напоминаний
func (s *ReminderService) GetScheduledJobs() []string {
	return s.sched.JobNames()
}
