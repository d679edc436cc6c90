package bot

import (
	"testing"

	"panelbot/internal/service"
	"panelbot/internal/telegram"
	"panelbot/internal/testutil"

	"github.com/stretchr/testify/mock"
)

const (
	adminID    = int64(111)
	strangerID = int64(999)
	chatID     = int64(555)
)

func newTestRouter(sender *testutil.MockSender, repo *testutil.MockAccountRepository) *Router {
	return NewRouter(
		sender,
		service.NewAccountService(repo),
		[]int64{adminID},
		"https://panel.example.com/auth",
		testutil.NewTestLogger(),
	)
}

func messageUpdate(userID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		Message: &telegram.Message{
			MessageID: 10,
			From:      telegram.User{ID: userID, FirstName: "Test"},
			Chat:      telegram.Chat{ID: chatID, Type: "private"},
			Text:      text,
		},
	}
}

func callbackUpdate(userID int64, data string) telegram.Update {
	return telegram.Update{
		UpdateID: 2,
		CallbackQuery: &telegram.CallbackQuery{
			ID:   "cb1",
			From: telegram.User{ID: userID, FirstName: "Test"},
			Message: &telegram.Message{
				MessageID: 10,
				Chat:      telegram.Chat{ID: chatID, Type: "private"},
			},
			Data: data,
		},
	}
}

func TestHandleUpdate_EmptyUpdateIsIgnored(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	router.HandleUpdate(telegram.Update{UpdateID: 1})
	router.HandleUpdate(messageUpdate(adminID, ""))

	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetByUsername", mock.Anything)
}

func TestHandleUpdate_UnauthorizedMessage(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	sender.On("SendMessage", chatID, msgNotAuthorized).Return(nil)

	router.HandleUpdate(messageUpdate(strangerID, "/adduser newguy"))

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "SendMessage", 1)
	repo.AssertNotCalled(t, "GetByUsername", mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleUpdate_UnknownCommand(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	sender.On("SendMessage", chatID, msgUnknownCommand).Return(nil)

	router.HandleUpdate(messageUpdate(adminID, "/frobnicate now"))

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "SendMessage", 1)
	repo.AssertNotCalled(t, "GetByUsername", mock.Anything)
}

func TestHandleUpdate_StartRequiresExactMatch(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	// "/start now" is not the exact /start command.
	sender.On("SendMessage", chatID, msgUnknownCommand).Return(nil)

	router.HandleUpdate(messageUpdate(adminID, "/start now"))

	sender.AssertExpectations(t)
}

func TestHandleUpdate_StartAndHelp(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "start", text: "/start", expected: msgStart},
		{name: "start with whitespace", text: "  /start  ", expected: msgStart},
		{name: "help", text: "/help", expected: msgHelp},
		{name: "listusers stub", text: "/listusers", expected: msgListNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(testutil.MockSender)
			repo := new(testutil.MockAccountRepository)
			router := newTestRouter(sender, repo)

			sender.On("SendMessage", chatID, tt.expected).Return(nil)

			router.HandleUpdate(messageUpdate(adminID, tt.text))

			sender.AssertExpectations(t)
			repo.AssertNotCalled(t, "GetByUsername", mock.Anything)
		})
	}
}

func TestHandleCallback_Unauthorized(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	sender.On("AnswerCallbackQuery", "cb1", cbNotAllowed).Return(nil)

	router.HandleUpdate(callbackUpdate(strangerID, "copy_password_abc123"))

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "AnswerCallbackQuery", 1)
	// Denied callbacks get no chat message at all.
	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestHandleCallback_CopyUsername(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	sender.On("SendMessage", chatID, "📋 Username: <code>newguy</code>").Return(nil)
	sender.On("AnswerCallbackQuery", "cb1", cbUsernameReady).Return(nil)

	router.HandleUpdate(callbackUpdate(adminID, "copy_username_newguy"))

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "SendMessage", 1)
	sender.AssertNumberOfCalls(t, "AnswerCallbackQuery", 1)
}

func TestHandleCallback_CopyPassword(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	sender.On("SendMessage", chatID, "🔑 Password: <code>abc123</code>").Return(nil)
	sender.On("AnswerCallbackQuery", "cb1", cbPasswordReady).Return(nil)

	router.HandleUpdate(callbackUpdate(adminID, "copy_password_abc123"))

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "SendMessage", 1)
	sender.AssertNumberOfCalls(t, "AnswerCallbackQuery", 1)
}

func TestHandleCallback_UnknownData(t *testing.T) {
	sender := new(testutil.MockSender)
	repo := new(testutil.MockAccountRepository)
	router := newTestRouter(sender, repo)

	sender.On("AnswerCallbackQuery", "cb1", cbUnrecognized).Return(nil)

	router.HandleUpdate(callbackUpdate(adminID, "something_else"))

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "AnswerCallbackQuery", 1)
	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}
