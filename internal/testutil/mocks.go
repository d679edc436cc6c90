package testutil

import (
	"panelbot/internal/domain"
	"panelbot/internal/telegram"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock for AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUsername(username string) (*domain.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(username, passwordHash string) (*domain.Account, error) {
	args := m.Called(username, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockSender is a mock for the router's Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *MockSender) SendMessageWithKeyboard(chatID int64, text string, keyboard telegram.InlineKeyboardMarkup) error {
	args := m.Called(chatID, text, keyboard)
	return args.Error(0)
}

func (m *MockSender) AnswerCallbackQuery(callbackID, text string) error {
	args := m.Called(callbackID, text)
	return args.Error(0)
}
