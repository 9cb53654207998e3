package model

import "time"

// UserRole роль пользователя в системе
type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Account учётная запись учителя или ученика.
// Аккаунты заводятся заранее, пользователь привязывает Telegram через логин.
type Account struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Login           string    `json:"login"`
	TelegramID      *int64    `json:"telegram_id"` // nil пока аккаунт не привязан
	ReminderEnabled bool      `json:"reminder_enabled"`
	Role            UserRole  `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}

// FullName возвращает имя и фамилию
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// IsLinked проверяет привязан ли Telegram аккаунт
func (a *Account) IsLinked() bool {
	return a.TelegramID != nil
}
