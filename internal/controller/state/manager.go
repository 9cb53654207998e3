// Package state хранит состояния диалогов пользователей в памяти.
package state

import "sync"

// UserState состояние диалога с пользователем
type UserState string

const (
	StateNone          UserState = ""
	StateAwaitingLogin UserState = "awaiting_login" // Ждём ввода логина
)

// Manager управляет состояниями диалогов
type Manager struct {
	mu     sync.RWMutex
	states map[int64]UserState // telegramID -> состояние
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]UserState),
	}
}

// GetState получает текущее состояние пользователя
func (m *Manager) GetState(telegramID int64) UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.states[telegramID]
}

// SetState устанавливает состояние пользователя
func (m *Manager) SetState(telegramID int64, state UserState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state == StateNone {
		delete(m.states, telegramID)
		return
	}
	m.states[telegramID] = state
}

// ClearState сбрасывает состояние пользователя
func (m *Manager) ClearState(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, telegramID)
}
