package handlers

import (
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/config"
	"github.com/ovoronina/tutor_bot/internal/controller/state"
	"github.com/ovoronina/tutor_bot/internal/service"
	"github.com/ovoronina/tutor_bot/internal/transcribe"
)

// Handlers содержит все зависимости для обработки команд и сообщений
type Handlers struct {
	authService     *service.AuthService
	scheduleService *service.ScheduleService
	transcriber     *transcribe.Client // nil — голосовые функции выключены
	stateManager    *state.Manager
	cfg             *config.Config
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	authService *service.AuthService,
	scheduleService *service.ScheduleService,
	transcriber *transcribe.Client,
	stateManager *state.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:     authService,
		scheduleService: scheduleService,
		transcriber:     transcriber,
		stateManager:    stateManager,
		cfg:             cfg,
		logger:          logger,
	}
}
