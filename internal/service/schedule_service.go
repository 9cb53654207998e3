package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/model"
	"github.com/ovoronina/tutor_bot/internal/repository"
)

// ScheduleService чтение расписания уроков для пользователей
type ScheduleService struct {
	lessons *repository.LessonRepository
	loc     *time.Location
	logger  *zap.Logger
}

func NewScheduleService(lessons *repository.LessonRepository, loc *time.Location, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		lessons: lessons,
		loc:     loc,
		logger:  logger,
	}
}

// GetSchedule возвращает всё расписание пользователя
func (s *ScheduleService) GetSchedule(ctx context.Context, account *model.Account) ([]*model.Lesson, error) {
	lessons, err := s.lessons.GetUserSchedule(ctx, account.Role, account.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return lessons, nil
}

// GetScheduleForDay возвращает расписание на конкретный день
func (s *ScheduleService) GetScheduleForDay(ctx context.Context, account *model.Account, day time.Time) ([]*model.Lesson, error) {
	lessons, err := s.lessons.GetUserSchedule(ctx, account.Role, account.ID, &day)
	if err != nil {
		return nil, fmt.Errorf("get schedule for day: %w", err)
	}
	return lessons, nil
}

// Today возвращает сегодняшнюю дату в таймзоне бота
func (s *ScheduleService) Today() time.Time {
	return time.Now().In(s.loc)
}

// Tomorrow возвращает завтрашнюю дату в таймзоне бота
func (s *ScheduleService) Tomorrow() time.Time {
	return s.Today().AddDate(0, 0, 1)
}
