package model

import "time"

// UserSession привязка Telegram ID к учётной записи после входа по логину
type UserSession struct {
	ID              int64     `json:"id"`
	TelegramID      int64     `json:"telegram_id"`
	UserRole        UserRole  `json:"user_role"`
	UserID          int64     `json:"user_id"`
	IsAuthenticated bool      `json:"is_authenticated"`
	LastActivity    time.Time `json:"last_activity"`
}
