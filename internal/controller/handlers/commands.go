package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/controller/common"
	"github.com/ovoronina/tutor_bot/internal/controller/state"
	"github.com/ovoronina/tutor_bot/internal/model"
	"github.com/ovoronina/tutor_bot/internal/service"
)

// HandleStart обрабатывает команду /start: показывает меню авторизованному
// пользователю, остальным предлагает войти по логину
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	account, err := h.authService.CurrentUser(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to check authentication", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	if account != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        common.MenuTitle(account),
			ReplyMarkup: common.MainMenuKeyboard(account.Role),
		})
		return
	}

	h.stateManager.SetState(telegramID, state.StateAwaitingLogin)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "👋 Привет! Я бот-помощник для учителей и учеников.\n\n" +
			"Для начала работы введите ваш логин:",
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "❌ Отмена", CallbackData: common.CancelAuth}},
			},
		},
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   h.helpText(),
	})
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if err := h.authService.Logout(ctx, telegramID); err != nil {
		h.logger.Error("Failed to logout", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "👋 Вы вышли из системы.\n\nДля повторного входа нажмите /start",
	})
}

// HandleTextMessage обрабатывает текстовые сообщения: единственный диалог — ввод логина
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID

	if h.stateManager.GetState(telegramID) != state.StateAwaitingLogin {
		return
	}

	h.handleLoginInput(ctx, b, update)
}

// handleLoginInput проверяет введённый логин и привязывает Telegram аккаунт
func (h *Handlers) handleLoginInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	login := strings.TrimSpace(update.Message.Text)

	account, err := h.authService.LoginByUsername(ctx, login, telegramID)

	switch {
	case errors.Is(err, service.ErrLoginNotFound):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Логин не найден. Проверьте правильность ввода и попробуйте еще раз.\n\n" +
				"Введите ваш логин:",
			ReplyMarkup: &models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{
					{{Text: "❌ Отмена", CallbackData: common.CancelAuth}},
				},
			},
		})
		return

	case errors.Is(err, service.ErrLoginTaken):
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Этот логин уже привязан к другому Telegram аккаунту.",
		})
		return

	case err != nil:
		h.logger.Error("Failed to login", zap.String("login", login), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	h.stateManager.ClearState(telegramID)

	roleName := "Ученик"
	if account.Role == model.RoleTeacher {
		roleName = "Учитель"
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf("✅ Добро пожаловать, %s!\nВы вошли как: %s",
			account.FullName(), roleName),
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        common.MenuTitle(account),
		ReplyMarkup: common.MainMenuKeyboard(account.Role),
	})
}

// helpText собирает текст справки
func (h *Handlers) helpText() string {
	return fmt.Sprintf(
		"ℹ️ Помощь\n\n"+
			"Доступные функции:\n\n"+
			"📅 Мое расписание - просмотр ваших уроков\n"+
			"🔔 Настройки напоминаний - управление уведомлениями\n\n"+
			"Голосовые сообщения:\n"+
			"Отправьте голосовое сообщение, и бот преобразует его в текст.\n\n"+
			"Напоминания:\n"+
			"Автоматические уведомления за %d минут до урока.\n\n"+
			"Команды:\n"+
			"/start - главное меню\n"+
			"/logout - выход из системы\n"+
			"/help - эта справка",
		h.cfg.ReminderMinutes,
	)
}

// sendError отправляет пользователю общее сообщение об ошибке
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "❌ Произошла ошибка. Попробуйте позже.",
	})
}
