package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler обёртка над gocron с собственной таблицей задач.
// Задачи регистрируются по строковому имени: повторная регистрация с тем же
// именем заменяет прежнюю задачу, а не добавляет дубликат.
type Scheduler struct {
	sch    gocron.Scheduler
	logger *zap.Logger

	mu   sync.Mutex
	jobs map[string]uuid.UUID // Имя задачи -> внутренний ID gocron
}

// New создаёт планировщик в указанной таймзоне
func New(loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	sch, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
		gocron.WithLogger(newGocronLogger(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}

	return &Scheduler{
		sch:    sch,
		logger: logger,
		jobs:   make(map[string]uuid.UUID),
	}, nil
}

// Start запускает обработку задач
func (s *Scheduler) Start() {
	s.sch.Start()
	s.logger.Info("Scheduler started")
}

// Stop останавливает планировщик. Уже запущенные задачи не прерываются.
func (s *Scheduler) Stop() error {
	if err := s.sch.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	s.logger.Info("Scheduler stopped")
	return nil
}

// UpsertCron регистрирует периодическую задачу по cron-выражению (с секундами).
// Существующая задача с тем же именем заменяется.
func (s *Scheduler) UpsertCron(name, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(name)

	job, err := s.sch.NewJob(
		gocron.CronJob(cronExpr, true),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("schedule cron job %q: %w", name, err)
	}

	s.jobs[name] = job.ID()
	s.logger.Info("Cron job scheduled",
		zap.String("job", name),
		zap.String("cron", cronExpr),
	)
	return nil
}

// ScheduleAt регистрирует одноразовую задачу на точный момент времени.
// Момент в прошлом отклоняется. Повторная регистрация с тем же именем
// заменяет прежнюю задачу.
func (s *Scheduler) ScheduleAt(name string, at time.Time, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !at.After(time.Now()) {
		return fmt.Errorf("schedule one-shot job %q: time %s is in the past", name, at)
	}

	s.removeLocked(name)

	job, err := s.sch.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(task),
		gocron.WithName(name),
		// Одноразовая задача убирается из таблицы после выполнения
		gocron.WithEventListeners(
			gocron.AfterJobRuns(func(jobID uuid.UUID, jobName string) {
				s.forget(jobName, jobID)
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("schedule one-shot job %q: %w", name, err)
	}

	s.jobs[name] = job.ID()
	s.logger.Info("One-shot job scheduled",
		zap.String("job", name),
		zap.Time("at", at),
	)
	return nil
}

// Cancel снимает задачу по имени. Возвращает false если задачи нет
// (в том числе если одноразовая задача уже выполнилась).
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobs[name]
	if !ok {
		return false
	}

	if err := s.sch.RemoveJob(id); err != nil {
		s.logger.Warn("Failed to remove job",
			zap.String("job", name),
			zap.Error(err),
		)
	}
	delete(s.jobs, name)

	s.logger.Info("Job cancelled", zap.String("job", name))
	return true
}

// JobNames возвращает имена всех зарегистрированных задач
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// removeLocked снимает задачу без возврата результата, вызывается под mu
func (s *Scheduler) removeLocked(name string) {
	if id, ok := s.jobs[name]; ok {
		if err := s.sch.RemoveJob(id); err != nil {
			s.logger.Warn("Failed to replace job",
				zap.String("job", name),
				zap.Error(err),
			)
		}
		delete(s.jobs, name)
	}
}

// forget убирает выполнившуюся одноразовую задачу из таблицы.
// Сверяем ID: задача могла быть заменена новой с тем же именем.
func (s *Scheduler) forget(name string, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.jobs[name]; ok && current == id {
		delete(s.jobs, name)
	}
}
