package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovoronina/tutor_bot/internal/model"
)

type fakeAccountStore struct {
	byLogin map[string]*model.Account
	byID    map[model.UserRole]map[int64]*model.Account

	bindCalls    int
	boundLogin   string
	boundTgID    int64
	reminderSets map[int64]bool
}

func newFakeAccountStore(accounts ...*model.Account) *fakeAccountStore {
	s := &fakeAccountStore{
		byLogin:      make(map[string]*model.Account),
		byID:         make(map[model.UserRole]map[int64]*model.Account),
		reminderSets: make(map[int64]bool),
	}
	for _, a := range accounts {
		s.byLogin[a.Login] = a
		if s.byID[a.Role] == nil {
			s.byID[a.Role] = make(map[int64]*model.Account)
		}
		s.byID[a.Role][a.ID] = a
	}
	return s
}

func (s *fakeAccountStore) GetByLogin(_ context.Context, login string) (*model.Account, error) {
	return s.byLogin[login], nil
}

func (s *fakeAccountStore) GetByID(_ context.Context, role model.UserRole, id int64) (*model.Account, error) {
	return s.byID[role][id], nil
}

func (s *fakeAccountStore) BindTelegramID(_ context.Context, _ model.UserRole, login string, telegramID int64) error {
	s.bindCalls++
	s.boundLogin = login
	s.boundTgID = telegramID
	return nil
}

func (s *fakeAccountStore) UpdateReminderEnabled(_ context.Context, _ model.UserRole, id int64, enabled bool) error {
	s.reminderSets[id] = enabled
	return nil
}

type fakeSessionStore struct {
	sessions map[int64]*model.UserSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]*model.UserSession)}
}

func (s *fakeSessionStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.UserSession, error) {
	return s.sessions[telegramID], nil
}

func (s *fakeSessionStore) Upsert(_ context.Context, telegramID int64, role model.UserRole, userID int64) error {
	s.sessions[telegramID] = &model.UserSession{
		TelegramID:      telegramID,
		UserRole:        role,
		UserID:          userID,
		IsAuthenticated: true,
	}
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, telegramID int64) error {
	delete(s.sessions, telegramID)
	return nil
}

func unlinkedStudent() *model.Account {
	return &model.Account{
		ID:        7,
		FirstName: "Иван",
		LastName:  "Сидоров",
		Login:     "ivan",
		Role:      model.RoleStudent,
	}
}

func linkedTeacher(telegramID int64) *model.Account {
	return &model.Account{
		ID:         3,
		FirstName:  "Анна",
		LastName:   "Петрова",
		Login:      "anna",
		TelegramID: &telegramID,
		Role:       model.RoleTeacher,
	}
}

func TestAuthService_LoginByUsername(t *testing.T) {
	tests := []struct {
		name       string
		account    *model.Account
		login      string
		telegramID int64
		wantErr    error
		wantBind   bool
	}{
		{
			name:       "неизвестный логин",
			account:    unlinkedStudent(),
			login:      "nosuch",
			telegramID: 111,
			wantErr:    ErrLoginNotFound,
		},
		{
			name:       "первый вход привязывает Telegram",
			account:    unlinkedStudent(),
			login:      "ivan",
			telegramID: 111,
			wantBind:   true,
		},
		{
			name:       "логин занят другим Telegram аккаунтом",
			account:    linkedTeacher(999),
			login:      "anna",
			telegramID: 111,
			wantErr:    ErrLoginTaken,
		},
		{
			name:       "повторный вход с того же Telegram без перепривязки",
			account:    linkedTeacher(111),
			login:      "anna",
			telegramID: 111,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := newFakeAccountStore(tt.account)
			sessions := newFakeSessionStore()
			svc := NewAuthService(accounts, sessions, zap.NewNop())

			got, err := svc.LoginByUsername(context.Background(), tt.login, tt.telegramID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, got)
				assert.Zero(t, accounts.bindCalls)
				assert.Nil(t, sessions.sessions[tt.telegramID], "сессия не должна создаваться")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			require.NotNil(t, got.TelegramID)
			assert.Equal(t, tt.telegramID, *got.TelegramID)

			if tt.wantBind {
				assert.Equal(t, 1, accounts.bindCalls)
				assert.Equal(t, tt.login, accounts.boundLogin)
				assert.Equal(t, tt.telegramID, accounts.boundTgID)
			} else {
				assert.Zero(t, accounts.bindCalls, "привязанный аккаунт не перепривязывается")
			}

			session := sessions.sessions[tt.telegramID]
			require.NotNil(t, session)
			assert.Equal(t, tt.account.Role, session.UserRole)
			assert.Equal(t, tt.account.ID, session.UserID)
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	teacher := linkedTeacher(111)
	accounts := newFakeAccountStore(teacher)
	sessions := newFakeSessionStore()
	svc := NewAuthService(accounts, sessions, zap.NewNop())

	// Без сессии пользователь не авторизован
	got, err := svc.CurrentUser(context.Background(), 111)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = svc.LoginByUsername(context.Background(), "anna", 111)
	require.NoError(t, err)

	got, err = svc.CurrentUser(context.Background(), 111)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, teacher.ID, got.ID)
	assert.Equal(t, model.RoleTeacher, got.Role)
}

func TestAuthService_Logout(t *testing.T) {
	accounts := newFakeAccountStore(linkedTeacher(111))
	sessions := newFakeSessionStore()
	svc := NewAuthService(accounts, sessions, zap.NewNop())

	_, err := svc.LoginByUsername(context.Background(), "anna", 111)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), 111))

	got, err := svc.CurrentUser(context.Background(), 111)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthService_ToggleReminders(t *testing.T) {
	accounts := newFakeAccountStore(linkedTeacher(111))
	sessions := newFakeSessionStore()
	svc := NewAuthService(accounts, sessions, zap.NewNop())

	// Без сессии переключение недоступно
	err := svc.ToggleReminders(context.Background(), 111, false)
	require.Error(t, err)

	_, err = svc.LoginByUsername(context.Background(), "anna", 111)
	require.NoError(t, err)

	require.NoError(t, svc.ToggleReminders(context.Background(), 111, false))
	enabled, ok := accounts.reminderSets[3]
	require.True(t, ok)
	assert.False(t, enabled)
}
