package model

import "time"

type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled" // Запланирован
	LessonStatusCompleted LessonStatus = "completed" // Проведён
	LessonStatusCancelled LessonStatus = "cancelled" // Отменён
)

type Lesson struct {
	ID              int64        `json:"id"`
	TeacherID       int64        `json:"teacher_id"`
	StudentID       int64        `json:"student_id"`
	LessonDate      time.Time    `json:"lesson_date"` // Только дата, время в LessonTime
	LessonTime      time.Time    `json:"lesson_time"` // Только время дня
	Subject         string       `json:"subject"`
	DurationMinutes int          `json:"duration_minutes"`
	Status          LessonStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`

	// Имя второго участника, заполняется join-ом в зависимости от роли запрашивающего
	PartnerFirstName string `json:"partner_first_name,omitempty"`
	PartnerLastName  string `json:"partner_last_name,omitempty"`
}

// Participant срез данных участника урока, нужный для отправки напоминания
type Participant struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	TelegramID      *int64 `json:"telegram_id"`
	ReminderEnabled bool   `json:"reminder_enabled"`
}

// FullName возвращает имя и фамилию участника
func (p Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}

// UpcomingLesson урок из окна напоминаний со встроенными данными обоих участников.
// Одна строка запроса — без повторных обращений к базе при отправке.
type UpcomingLesson struct {
	ID         int64       `json:"id"`
	LessonDate time.Time   `json:"lesson_date"`
	LessonTime time.Time   `json:"lesson_time"`
	Subject    string      `json:"subject"`
	Teacher    Participant `json:"teacher"`
	Student    Participant `json:"student"`
}

// ParticipantByRole возвращает участника урока по его роли
func (u *UpcomingLesson) ParticipantByRole(role UserRole) Participant {
	if role == RoleTeacher {
		return u.Teacher
	}
	return u.Student
}

// CounterpartByRole возвращает второго участника (кого упоминаем в тексте напоминания)
func (u *UpcomingLesson) CounterpartByRole(role UserRole) Participant {
	if role == RoleTeacher {
		return u.Student
	}
	return u.Teacher
}
