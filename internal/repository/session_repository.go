package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ovoronina/tutor_bot/internal/model"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// GetByTelegramID получает активную сессию по Telegram ID
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.UserSession, error) {
	query := `
		SELECT id, telegram_id, user_role, user_id, is_authenticated, last_activity
		FROM user_sessions
		WHERE telegram_id = $1 AND is_authenticated = true
	`

	var session model.UserSession
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&session.ID,
		&session.TelegramID,
		&session.UserRole,
		&session.UserID,
		&session.IsAuthenticated,
		&session.LastActivity,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Сессии нет
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}

	return &session, nil
}

// Upsert создаёт или обновляет сессию пользователя
func (r *SessionRepository) Upsert(ctx context.Context, telegramID int64, role model.UserRole, userID int64) error {
	query := `
		INSERT INTO user_sessions (telegram_id, user_role, user_id, is_authenticated, last_activity)
		VALUES ($1, $2, $3, true, NOW())
		ON CONFLICT (telegram_id)
		DO UPDATE SET user_role = $2, user_id = $3, is_authenticated = true, last_activity = NOW()
	`

	_, err := r.pool.Exec(ctx, query, telegramID, role, userID)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// Delete удаляет сессию (выход из системы)
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_sessions WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
