// Package callbacks обработка нажатий inline кнопок.
package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/config"
	"github.com/ovoronina/tutor_bot/internal/controller/common"
	"github.com/ovoronina/tutor_bot/internal/controller/state"
	"github.com/ovoronina/tutor_bot/internal/model"
	"github.com/ovoronina/tutor_bot/internal/service"
)

// Handler содержит зависимости обработчиков callback query
type Handler struct {
	authService     *service.AuthService
	scheduleService *service.ScheduleService
	stateManager    *state.Manager
	cfg             *config.Config
	logger          *zap.Logger
}

// NewHandler создаёт обработчик callback query
func NewHandler(
	authService *service.AuthService,
	scheduleService *service.ScheduleService,
	stateManager *state.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:     authService,
		scheduleService: scheduleService,
		stateManager:    stateManager,
		cfg:             cfg,
		logger:          logger,
	}
}

// HandleCallbackQuery распределяет callback query по обработчикам экранов
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	// Подтверждаем callback сразу, чтобы кнопка не "зависала"
	common.AnswerCallback(ctx, b, callback.ID)

	if data == common.CancelAuth {
		h.handleCancelAuth(ctx, b, callback)
		return
	}

	// Остальные экраны доступны только после входа
	account, err := h.authService.CurrentUser(ctx, callback.From.ID)
	if err != nil {
		h.logger.Error("Failed to resolve user for callback", zap.Error(err))
		return
	}
	if account == nil {
		h.editMessage(ctx, b, callback, "Сессия не найдена. Для входа нажмите /start", nil)
		return
	}

	switch data {
	case common.MainMenu:
		h.handleMainMenu(ctx, b, callback, account)
	case common.ViewSchedule:
		h.handleViewSchedule(ctx, b, callback, account)
	case common.ScheduleToday:
		h.handleScheduleForDay(ctx, b, callback, account, "Сегодня", h.scheduleService.Today())
	case common.ScheduleTomorrow:
		h.handleScheduleForDay(ctx, b, callback, account, "Завтра", h.scheduleService.Tomorrow())
	case common.AITasks:
		h.handleAITasks(ctx, b, callback)
	case common.ReminderSettings:
		h.handleReminderSettings(ctx, b, callback, account)
	case common.RemindersOn:
		h.handleToggleReminders(ctx, b, callback, account, true)
	case common.RemindersOff:
		h.handleToggleReminders(ctx, b, callback, account, false)
	case common.Help:
		h.handleHelp(ctx, b, callback, account)
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
	}
}

// editMessage редактирует сообщение, из которого пришёл callback
func (h *Handler) editMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string, markup *models.InlineKeyboardMarkup) {
	message := callback.Message.Message
	if message == nil {
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    message.Chat.ID,
		MessageID: message.ID,
		Text:      text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.EditMessageText(ctx, params); err != nil {
		h.logger.Error("Failed to edit message", zap.Error(err))
	}
}

func (h *Handler) handleCancelAuth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.stateManager.ClearState(callback.From.ID)
	h.editMessage(ctx, b, callback,
		"❌ Аутентификация отменена.\n\nДля начала работы нажмите /start", nil)
}

func (h *Handler) handleMainMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, account *model.Account) {
	h.editMessage(ctx, b, callback, common.MenuTitle(account), common.MainMenuKeyboard(account.Role))
}
