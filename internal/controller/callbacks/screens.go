package callbacks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/controller/common"
	"github.com/ovoronina/tutor_bot/internal/controller/formatting"
	"github.com/ovoronina/tutor_bot/internal/model"
)

// handleViewSchedule показывает всё расписание пользователя
func (h *Handler) handleViewSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, account *model.Account) {
	lessons, err := h.scheduleService.GetSchedule(ctx, account)
	if err != nil {
		h.logger.Error("Failed to load schedule", zap.Error(err))
		h.editMessage(ctx, b, callback,
			"❌ Произошла ошибка при загрузке расписания.", common.BackToMenuKeyboard())
		return
	}

	if len(lessons) == 0 {
		h.editMessage(ctx, b, callback,
			"📅 Ваше расписание пусто\n\nУ вас пока нет запланированных уроков.",
			common.BackToMenuKeyboard())
		return
	}

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📅 Сегодня", CallbackData: common.ScheduleToday}},
			{{Text: "📅 Завтра", CallbackData: common.ScheduleTomorrow}},
			{{Text: "🔙 Назад в меню", CallbackData: common.MainMenu}},
		},
	}

	h.editMessage(ctx, b, callback, formatting.FormatSchedule(lessons, account.Role), markup)
}

// handleScheduleForDay показывает расписание на конкретный день
func (h *Handler) handleScheduleForDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, account *model.Account, title string, day time.Time) {
	lessons, err := h.scheduleService.GetScheduleForDay(ctx, account, day)
	if err != nil {
		h.logger.Error("Failed to load day schedule", zap.Error(err))
		h.editMessage(ctx, b, callback,
			"❌ Произошла ошибка при загрузке расписания.", common.BackToMenuKeyboard())
		return
	}

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📅 Все расписание", CallbackData: common.ViewSchedule}},
			{{Text: "🔙 Назад в меню", CallbackData: common.MainMenu}},
		},
	}

	h.editMessage(ctx, b, callback,
		formatting.FormatDaySchedule(lessons, account.Role, title, day), markup)
}

// handleAITasks показывает ссылку на внешний ИИ чат для генерации заданий
func (h *Handler) handleAITasks(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	text := "🤖 Генерация задач с помощью ИИ\n\n" +
		"Для создания образовательных задач с помощью искусственного интеллекта, " +
		"перейдите по ссылке ниже:\n\n" +
		"🔗 " + h.cfg.AIChatURL + "\n\n" +
		"Там вы сможете:\n" +
		"• Генерировать задания по любым предметам\n" +
		"• Создавать тесты и контрольные работы\n" +
		"• Получать идеи для уроков\n" +
		"• Адаптировать материалы под разный уровень учеников"

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🌐 Открыть ИИ чат", URL: h.cfg.AIChatURL}},
			{{Text: "🔙 Назад в меню", CallbackData: common.MainMenu}},
		},
	}

	h.editMessage(ctx, b, callback, text, markup)
}

// handleReminderSettings показывает текущие настройки напоминаний
func (h *Handler) handleReminderSettings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, account *model.Account) {
	status := "выключены"
	toggle := models.InlineKeyboardButton{Text: "🔔 Включить напоминания", CallbackData: common.RemindersOn}
	if account.ReminderEnabled {
		status = "включены"
		toggle = models.InlineKeyboardButton{Text: "🔕 Выключить напоминания", CallbackData: common.RemindersOff}
	}

	text := fmt.Sprintf(
		"🔔 Настройки напоминаний\n\n"+
			"Текущий статус: %s\n\n"+
			"Напоминания отправляются за %d %s до начала урока.\n\n"+
			"Выберите действие:",
		status, h.cfg.ReminderMinutes, formatting.PluralizeMinutes(h.cfg.ReminderMinutes),
	)

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{toggle},
			{{Text: "🔙 Назад в меню", CallbackData: common.MainMenu}},
		},
	}

	h.editMessage(ctx, b, callback, text, markup)
}

// handleToggleReminders включает или выключает напоминания
func (h *Handler) handleToggleReminders(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, account *model.Account, enable bool) {
	var text string
	if err := h.authService.ToggleReminders(ctx, callback.From.ID, enable); err != nil {
		h.logger.Error("Failed to toggle reminders", zap.Error(err))
		text = "❌ Произошла ошибка при изменении настроек."
	} else {
		status := "выключены"
		if enable {
			status = "включены"
		}
		text = fmt.Sprintf("✅ Напоминания успешно %s!", status)
	}

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🔔 Настройки напоминаний", CallbackData: common.ReminderSettings}},
			{{Text: "🔙 Назад в меню", CallbackData: common.MainMenu}},
		},
	}

	h.editMessage(ctx, b, callback, text, markup)
}

// handleHelp показывает справку в зависимости от роли
func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, account *model.Account) {
	var text string
	if account.Role == model.RoleTeacher {
		text = fmt.Sprintf(
			"ℹ️ Помощь - Учитель\n\n"+
				"Доступные функции:\n\n"+
				"📅 Мое расписание - просмотр ваших уроков\n"+
				"🤖 Генерация задач ИИ - создание заданий с помощью ИИ\n"+
				"🔔 Настройки напоминаний - управление уведомлениями\n\n"+
				"Голосовые сообщения:\n"+
				"Отправьте голосовое сообщение, и бот преобразует его в текст.\n\n"+
				"Напоминания:\n"+
				"Автоматические уведомления за %d минут до урока.\n\n"+
				"Команды:\n"+
				"/start - главное меню\n"+
				"/help - эта справка",
			h.cfg.ReminderMinutes)
	} else {
		text = fmt.Sprintf(
			"ℹ️ Помощь - Ученик\n\n"+
				"Доступные функции:\n\n"+
				"📅 Мое расписание - просмотр ваших уроков\n"+
				"🔔 Настройки напоминаний - управление уведомлениями\n\n"+
				"Голосовые сообщения:\n"+
				"Отправьте голосовое сообщение, и бот преобразует его в текст.\n\n"+
				"Напоминания:\n"+
				"Автоматические уведомления за %d минут до урока.\n\n"+
				"Команды:\n"+
				"/start - главное меню\n"+
				"/help - эта справка",
			h.cfg.ReminderMinutes)
	}

	h.editMessage(ctx, b, callback, text, common.BackToMenuKeyboard())
}
