// Package formatting форматирование дат, времени и уроков для сообщений бота.
package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/ovoronina/tutor_bot/internal/model"
)

// FormatDate форматирует дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели на русском
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), GetWeekdayName(int(t.Weekday())))
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// PluralizeMinutes возвращает правильное склонение слова "минута"
func PluralizeMinutes(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "минуту"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "минуты"
	}
	return "минут"
}

// partnerIcon значок второго участника в зависимости от роли запрашивающего
func partnerIcon(role model.UserRole) string {
	if role == model.RoleTeacher {
		return "👨‍🎓"
	}
	return "👨‍🏫"
}

// FormatLessonLine форматирует одну строку урока в расписании
func FormatLessonLine(lesson *model.Lesson, role model.UserRole) string {
	subject := lesson.Subject
	if subject == "" {
		subject = "Урок"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕐 %s - %s\n", FormatTime(lesson.LessonTime), subject))
	b.WriteString(fmt.Sprintf("%s %s %s\n", partnerIcon(role), lesson.PartnerFirstName, lesson.PartnerLastName))
	b.WriteString(fmt.Sprintf("⏱ %d мин\n", lesson.DurationMinutes))
	return b.String()
}

// FormatSchedule форматирует список уроков, группируя по датам
func FormatSchedule(lessons []*model.Lesson, role model.UserRole) string {
	var b strings.Builder
	b.WriteString("📅 Ваше расписание:\n")

	var currentDate string
	for _, lesson := range lessons {
		date := lesson.LessonDate.Format("2006-01-02")
		if date != currentDate {
			currentDate = date
			b.WriteString(fmt.Sprintf("\n📆 %s\n", FormatDateWithWeekday(lesson.LessonDate)))
		}
		b.WriteString(FormatLessonLine(lesson, role))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatDaySchedule форматирует расписание на один день
func FormatDaySchedule(lessons []*model.Lesson, role model.UserRole, title string, day time.Time) string {
	if len(lessons) == 0 {
		return fmt.Sprintf("📅 %s\n\nУроков не запланировано.", title)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 %s (%s)\n\n", title, FormatDate(day)))
	for _, lesson := range lessons {
		b.WriteString(FormatLessonLine(lesson, role))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
