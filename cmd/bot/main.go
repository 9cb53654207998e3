package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/app"
	"github.com/ovoronina/tutor_bot/internal/config"
	"github.com/ovoronina/tutor_bot/internal/controller"
	"github.com/ovoronina/tutor_bot/internal/repository"
	"github.com/ovoronina/tutor_bot/internal/scheduler"
	"github.com/ovoronina/tutor_bot/internal/service"
	"github.com/ovoronina/tutor_bot/internal/transcribe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutor bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Int("reminder_minutes", cfg.ReminderMinutes))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	loc := cfg.Location()

	// Репозитории
	accountRepo := repository.NewAccountRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)

	// Telegram бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Сервисы
	authService := service.NewAuthService(accountRepo, sessionRepo, logger)
	scheduleService := service.NewScheduleService(lessonRepo, loc, logger)
	transcriber := transcribe.New(cfg.OpenAIAPIKey)

	// Планировщик и напоминания
	sched, err := scheduler.New(loc, logger)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}

	reminderService := service.NewReminderService(
		lessonRepo,
		service.NewTelegramNotifier(b),
		sched,
		loc,
		cfg.ReminderMinutes,
		logger,
	)

	sched.Start()
	if err := reminderService.Start(); err != nil {
		logger.Fatal("Failed to start reminder service", zap.Error(err))
	}

	defer func() {
		reminderService.Stop()
		if err := sched.Stop(); err != nil {
			logger.Error("Failed to stop scheduler", zap.Error(err))
		}
	}()

	// Контроллер бота
	botController := controller.NewBotController(b, authService, scheduleService, transcriber, cfg, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Блокируется до отмены контекста (SIGINT/SIGTERM)
	botController.Start(ctx)

	logger.Info("Tutor bot stopped")
}
