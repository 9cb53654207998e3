package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/config"
	"github.com/ovoronina/tutor_bot/internal/controller/callbacks"
	"github.com/ovoronina/tutor_bot/internal/controller/handlers"
	"github.com/ovoronina/tutor_bot/internal/controller/state"
	"github.com/ovoronina/tutor_bot/internal/service"
	"github.com/ovoronina/tutor_bot/internal/transcribe"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	authService *service.AuthService,
	scheduleService *service.ScheduleService,
	transcriber *transcribe.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *BotController {
	// Единый менеджер состояний для диалога входа
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		authService,
		scheduleService,
		transcriber,
		stateManager,
		cfg,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		authService,
		scheduleService,
		stateManager,
		cfg,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)

	// Текстовые сообщения (диалог ввода логина)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Голосовые и аудио сообщения
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && update.Message.Voice != nil
	}, c.handlers.HandleVoiceMessage)
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && update.Message.Audio != nil
	}, c.handlers.HandleAudioMessage)

	// Нажатия на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "help", Description: "❓ Справка"},
		{Command: "logout", Description: "🚪 Выйти из системы"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
