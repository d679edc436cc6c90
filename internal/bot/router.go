// Package bot routes inbound Telegram updates to command and callback
// handlers. The router owns the authorization policy: every command and
// every button press is gated on membership in the admin id set.
package bot

import (
	"strings"

	"panelbot/internal/metrics"
	"panelbot/internal/service"
	"panelbot/internal/telegram"

	"go.uber.org/zap"
)

// Sender is the slice of the Telegram client the router needs.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(callbackID, text string) error
}

// Router dispatches updates from either ingestion source. It never lets a
// failure escape: every error path ends in a chat message, a callback
// acknowledgment, or a log entry.
type Router struct {
	client   Sender
	accounts *service.AccountService
	admins   map[int64]struct{}
	loginURL string
	logger   *zap.Logger
}

// NewRouter creates a router. adminIDs is the fixed set of senders allowed
// to use the bot; it is never mutated after construction.
func NewRouter(
	client Sender,
	accounts *service.AccountService,
	adminIDs []int64,
	loginURL string,
	logger *zap.Logger,
) *Router {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Router{
		client:   client,
		accounts: accounts,
		admins:   admins,
		loginURL: loginURL,
		logger:   logger,
	}
}

func (r *Router) authorized(userID int64) bool {
	_, ok := r.admins[userID]
	return ok
}

// HandleUpdate dispatches one update. Safe to call from any ingestion
// source; errors never propagate past this boundary.
func (r *Router) HandleUpdate(u telegram.Update) {
	if u.CallbackQuery != nil {
		r.handleCallback(u.CallbackQuery)
		return
	}
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	r.handleMessage(u.Message)
}

func (r *Router) handleMessage(msg *telegram.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if !r.authorized(userID) {
		r.logger.Warn("Unauthorized message",
			zap.Int64("user_id", userID),
			zap.String("username", msg.From.Username),
		)
		r.send(chatID, msgNotAuthorized)
		return
	}

	switch {
	case strings.HasPrefix(text, "/adduser"), strings.HasPrefix(text, "/adddb"):
		r.handleAddUser(chatID, text)
	case strings.HasPrefix(text, "/listusers"):
		r.handleListUsers(chatID)
	case strings.HasPrefix(text, "/help"):
		r.handleHelp(chatID)
	case text == "/start":
		r.handleStart(chatID)
	default:
		metrics.CommandsTotal.WithLabelValues("unknown", "rejected").Inc()
		r.send(chatID, msgUnknownCommand)
	}
}

// send delivers a message best-effort: a failed send is logged and
// counted, never retried.
func (r *Router) send(chatID int64, text string) {
	if err := r.client.SendMessage(chatID, text); err != nil {
		metrics.SendFailuresTotal.Inc()
		r.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// answer acknowledges a callback best-effort.
func (r *Router) answer(callbackID, text string) {
	if err := r.client.AnswerCallbackQuery(callbackID, text); err != nil {
		metrics.SendFailuresTotal.Inc()
		r.logger.Error("Failed to answer callback query",
			zap.String("callback_id", callbackID),
			zap.Error(err),
		)
	}
}
