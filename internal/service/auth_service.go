package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/model"
)

var (
	// ErrLoginNotFound логин не существует ни среди учителей, ни среди учеников
	ErrLoginNotFound = errors.New("login not found")
	// ErrLoginTaken логин уже привязан к другому Telegram аккаунту
	ErrLoginTaken = errors.New("login already bound to another telegram account")
)

// AccountStore доступ к учётным записям учителей и учеников
type AccountStore interface {
	GetByLogin(ctx context.Context, login string) (*model.Account, error)
	GetByID(ctx context.Context, role model.UserRole, id int64) (*model.Account, error)
	BindTelegramID(ctx context.Context, role model.UserRole, login string, telegramID int64) error
	UpdateReminderEnabled(ctx context.Context, role model.UserRole, id int64, enabled bool) error
}

// SessionStore хранилище активных сессий
type SessionStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.UserSession, error)
	Upsert(ctx context.Context, telegramID int64, role model.UserRole, userID int64) error
	Delete(ctx context.Context, telegramID int64) error
}

// AuthService вход по логину и привязка Telegram аккаунтов
type AuthService struct {
	accounts AccountStore
	sessions SessionStore
	logger   *zap.Logger
}

func NewAuthService(
	accounts AccountStore,
	sessions SessionStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// CurrentUser возвращает учётную запись по активной сессии, nil если не авторизован
func (s *AuthService) CurrentUser(ctx context.Context, telegramID int64) (*model.Account, error) {
	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	account, err := s.accounts.GetByID(ctx, session.UserRole, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

// LoginByUsername выполняет вход по логину: проверяет учётную запись,
// привязывает Telegram ID при первом входе и создаёт сессию.
func (s *AuthService) LoginByUsername(ctx context.Context, login string, telegramID int64) (*model.Account, error) {
	account, err := s.accounts.GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("lookup login: %w", err)
	}
	if account == nil {
		return nil, ErrLoginNotFound
	}

	// Логин, привязанный к чужому Telegram, повторно использовать нельзя
	if account.IsLinked() && *account.TelegramID != telegramID {
		return nil, ErrLoginTaken
	}

	if !account.IsLinked() {
		if err := s.accounts.BindTelegramID(ctx, account.Role, login, telegramID); err != nil {
			return nil, fmt.Errorf("bind telegram id: %w", err)
		}
		account.TelegramID = &telegramID
	}

	if err := s.sessions.Upsert(ctx, telegramID, account.Role, account.ID); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("login", login),
		zap.String("role", string(account.Role)),
		zap.Int64("telegram_id", telegramID),
	)

	return account, nil
}

// Logout завершает сессию пользователя
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.sessions.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// ToggleReminders включает или выключает напоминания для пользователя
func (s *AuthService) ToggleReminders(ctx context.Context, telegramID int64, enabled bool) error {
	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("user not authenticated")
	}

	err = s.accounts.UpdateReminderEnabled(ctx, session.UserRole, session.UserID, enabled)
	if err != nil {
		return fmt.Errorf("toggle reminders: %w", err)
	}

	s.logger.Info("Reminder setting updated",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("enabled", enabled),
	)
	return nil
}
