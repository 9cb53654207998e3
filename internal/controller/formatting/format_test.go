package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ovoronina/tutor_bot/internal/model"
)

func TestPluralizeMinutes(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "минуту"},
		{2, "минуты"},
		{5, "минут"},
		{11, "минут"},
		{21, "минуту"},
		{15, "минут"},
		{22, "минуты"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeMinutes(tt.count), "count=%d", tt.count)
	}
}

func TestFormatSchedule_GroupsByDate(t *testing.T) {
	day1 := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	at := func(h, m int) time.Time { return time.Date(2025, 10, 6, h, m, 0, 0, time.UTC) }

	lessons := []*model.Lesson{
		{LessonDate: day1, LessonTime: at(14, 30), Subject: "Математика", DurationMinutes: 60, PartnerFirstName: "Иван", PartnerLastName: "Сидоров"},
		{LessonDate: day1, LessonTime: at(16, 0), DurationMinutes: 45, PartnerFirstName: "Мария", PartnerLastName: "Иванова"},
		{LessonDate: day2, LessonTime: at(10, 0), Subject: "Физика", DurationMinutes: 90, PartnerFirstName: "Иван", PartnerLastName: "Сидоров"},
	}

	got := FormatSchedule(lessons, model.RoleTeacher)

	assert.Contains(t, got, "06.10.2025 (Понедельник)")
	assert.Contains(t, got, "07.10.2025 (Вторник)")
	assert.Contains(t, got, "🕐 14:30 - Математика")
	// Урок без предмета подписывается просто "Урок"
	assert.Contains(t, got, "🕐 16:00 - Урок")
	assert.Contains(t, got, "👨‍🎓 Иван Сидоров")
	assert.Contains(t, got, "⏱ 90 мин")
}

func TestFormatDaySchedule_Empty(t *testing.T) {
	got := FormatDaySchedule(nil, model.RoleStudent, "Сегодня", time.Now())
	assert.Contains(t, got, "Уроков не запланировано")
}
