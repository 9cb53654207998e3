// Package common общие константы callback data и построители клавиатур.
package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ovoronina/tutor_bot/internal/model"
)

// Callback data экранов бота
const (
	MainMenu         = "main_menu"
	ViewSchedule     = "view_schedule"
	ScheduleToday    = "schedule_today"
	ScheduleTomorrow = "schedule_tomorrow"
	AITasks          = "ai_tasks"
	ReminderSettings = "reminder_settings"
	RemindersOn      = "toggle_reminders_on"
	RemindersOff     = "toggle_reminders_off"
	Help             = "help"
	CancelAuth       = "cancel_auth"
)

// MainMenuKeyboard строит главное меню в зависимости от роли.
// Генерация задач ИИ доступна только учителям.
func MainMenuKeyboard(role model.UserRole) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{{Text: "📅 Мое расписание", CallbackData: ViewSchedule}},
	}

	if role == model.RoleTeacher {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🤖 Генерация задач ИИ", CallbackData: AITasks},
		})
	}

	rows = append(rows,
		[]models.InlineKeyboardButton{{Text: "🔔 Настройки напоминаний", CallbackData: ReminderSettings}},
		[]models.InlineKeyboardButton{{Text: "ℹ️ Помощь", CallbackData: Help}},
	)

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// BackToMenuKeyboard одна кнопка возврата в главное меню
func BackToMenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🔙 Назад в меню", CallbackData: MainMenu}},
		},
	}
}

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
}

// MenuTitle приветственный текст главного меню
func MenuTitle(account *model.Account) string {
	icon := "📚"
	if account.Role == model.RoleTeacher {
		icon = "🎓"
	}
	return icon + " Добро пожаловать, " + account.FullName() + "!\n\nВыберите действие:"
}
