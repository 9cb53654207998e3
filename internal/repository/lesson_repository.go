package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ovoronina/tutor_bot/internal/model"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// GetUserSchedule получает расписание пользователя с именем второго участника.
// dateFilter == nil — всё расписание, иначе только указанный день.
func (r *LessonRepository) GetUserSchedule(ctx context.Context, role model.UserRole, userID int64, dateFilter *time.Time) ([]*model.Lesson, error) {
	var query string
	if role == model.RoleTeacher {
		query = `
			SELECT l.id, l.teacher_id, l.student_id, l.lesson_date, l.lesson_time,
			       COALESCE(l.subject, ''), l.duration_minutes, l.status, l.created_at,
			       s.first_name, s.last_name
			FROM lessons l
			JOIN students s ON s.id = l.student_id
			WHERE l.teacher_id = $1
		`
	} else {
		query = `
			SELECT l.id, l.teacher_id, l.student_id, l.lesson_date, l.lesson_time,
			       COALESCE(l.subject, ''), l.duration_minutes, l.status, l.created_at,
			       t.first_name, t.last_name
			FROM lessons l
			JOIN teachers t ON t.id = l.teacher_id
			WHERE l.student_id = $1
		`
	}

	args := []interface{}{userID}
	if dateFilter != nil {
		query += ` AND l.lesson_date = $2`
		args = append(args, dateFilter.Format("2006-01-02"))
	}
	query += ` ORDER BY l.lesson_date, l.lesson_time`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get user schedule: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		var lesson model.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.TeacherID,
			&lesson.StudentID,
			&lesson.LessonDate,
			&lesson.LessonTime,
			&lesson.Subject,
			&lesson.DurationMinutes,
			&lesson.Status,
			&lesson.CreatedAt,
			&lesson.PartnerFirstName,
			&lesson.PartnerLastName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}

	return lessons, nil
}

// GetUpcomingLessons получает запланированные на сегодня уроки, начало которых
// попадает в окно (now, now+lookahead]. Данные обоих участников встроены в строку,
// чтобы при отправке напоминаний не ходить в базу второй раз.
func (r *LessonRepository) GetUpcomingLessons(ctx context.Context, now time.Time, lookahead time.Duration) ([]*model.UpcomingLesson, error) {
	window := ComputeWindow(now, lookahead)

	query := `
		SELECT l.id, l.lesson_date, l.lesson_time, COALESCE(l.subject, ''),
		       t.first_name, t.last_name, t.telegram_id, t.reminder_enabled,
		       s.first_name, s.last_name, s.telegram_id, s.reminder_enabled
		FROM lessons l
		JOIN teachers t ON t.id = l.teacher_id
		JOIN students s ON s.id = l.student_id
		WHERE l.lesson_date = $1
		  AND l.status = $2
		  AND l.lesson_time > $3
		  AND l.lesson_time <= $4
		ORDER BY l.lesson_time
	`

	rows, err := r.pool.Query(ctx, query,
		now.Format("2006-01-02"),
		model.LessonStatusScheduled,
		window.From.Format("15:04:05"),
		window.To.Format("15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("get upcoming lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.UpcomingLesson
	for rows.Next() {
		var lesson model.UpcomingLesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.LessonDate,
			&lesson.LessonTime,
			&lesson.Subject,
			&lesson.Teacher.FirstName,
			&lesson.Teacher.LastName,
			&lesson.Teacher.TelegramID,
			&lesson.Teacher.ReminderEnabled,
			&lesson.Student.FirstName,
			&lesson.Student.LastName,
			&lesson.Student.TelegramID,
			&lesson.Student.ReminderEnabled,
		)
		if err != nil {
			return nil, fmt.Errorf("scan upcoming lesson: %w", err)
		}
		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upcoming lessons: %w", err)
	}

	return lessons, nil
}
