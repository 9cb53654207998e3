package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ovoronina/tutor_bot/internal/model"
)

// AccountRepository доступ к учётным записям учителей и учеников.
// Таблицы разные, структура одинаковая, поэтому имя таблицы выбираем по роли.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func tableForRole(role model.UserRole) string {
	if role == model.RoleTeacher {
		return "teachers"
	}
	return "students"
}

// GetByLogin ищет учётную запись по логину среди учителей, затем среди учеников
func (r *AccountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	for _, role := range []model.UserRole{model.RoleTeacher, model.RoleStudent} {
		account, err := r.getByLoginInTable(ctx, role, login)
		if err != nil {
			return nil, err
		}
		if account != nil {
			return account, nil
		}
	}
	return nil, nil // Логин не найден
}

func (r *AccountRepository) getByLoginInTable(ctx context.Context, role model.UserRole, login string) (*model.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, login, telegram_id, reminder_enabled, created_at
		FROM %s
		WHERE login = $1
	`, tableForRole(role))

	account := model.Account{Role: role}
	err := r.pool.QueryRow(ctx, query, login).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Login,
		&account.TelegramID,
		&account.ReminderEnabled,
		&account.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by login: %w", role, err)
	}

	return &account, nil
}

// GetByID получает учётную запись по ID и роли
func (r *AccountRepository) GetByID(ctx context.Context, role model.UserRole, id int64) (*model.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, first_name, last_name, login, telegram_id, reminder_enabled, created_at
		FROM %s
		WHERE id = $1
	`, tableForRole(role))

	account := model.Account{Role: role}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Login,
		&account.TelegramID,
		&account.ReminderEnabled,
		&account.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s by id: %w", role, err)
	}

	return &account, nil
}

// BindTelegramID привязывает Telegram ID к учётной записи
func (r *AccountRepository) BindTelegramID(ctx context.Context, role model.UserRole, login string, telegramID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET telegram_id = $1
		WHERE login = $2
	`, tableForRole(role))

	result, err := r.pool.Exec(ctx, query, telegramID, login)
	if err != nil {
		return fmt.Errorf("bind telegram id: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}

	return nil
}

// UpdateReminderEnabled включает или выключает напоминания для учётной записи
func (r *AccountRepository) UpdateReminderEnabled(ctx context.Context, role model.UserRole, id int64, enabled bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET reminder_enabled = $1
		WHERE id = $2
	`, tableForRole(role))

	result, err := r.pool.Exec(ctx, query, enabled, id)
	if err != nil {
		return fmt.Errorf("update reminder enabled: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}

	return nil
}
