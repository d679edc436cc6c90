package bot

import (
	"errors"
	"fmt"
	"strings"

	"panelbot/internal/metrics"
	"panelbot/internal/service"
	"panelbot/internal/telegram"

	"go.uber.org/zap"
)

// handleAddUser provisions a panel account: "/adduser <username>", with
// /adddb as an alias.
func (r *Router) handleAddUser(chatID int64, text string) {
	parts := strings.Fields(text)
	verb := parts[0]

	if len(parts) < 2 {
		metrics.CommandsTotal.WithLabelValues("adduser", "invalid").Inc()
		r.send(chatID, fmt.Sprintf("❌ Usage: %s [username]", verb))
		return
	}

	username := strings.TrimSpace(parts[1])
	if len(username) < 3 {
		metrics.CommandsTotal.WithLabelValues("adduser", "invalid").Inc()
		r.send(chatID, msgUsernameTooShort)
		return
	}

	cred, err := r.accounts.Provision(username)
	if errors.Is(err, service.ErrAccountExists) {
		metrics.CommandsTotal.WithLabelValues("adduser", "exists").Inc()
		r.send(chatID, fmt.Sprintf("❌ User \"%s\" already exists.", username))
		return
	}
	if err != nil {
		// Storage detail stays in the log; the chat gets a generic failure.
		metrics.CommandsTotal.WithLabelValues("adduser", "error").Inc()
		r.logger.Error("Failed to create account",
			zap.String("username", username),
			zap.Error(err),
		)
		r.send(chatID, msgCreateFailed)
		return
	}

	metrics.CommandsTotal.WithLabelValues("adduser", "ok").Inc()
	metrics.AccountsCreatedTotal.Inc()
	r.logger.Info("Account created via bot",
		zap.String("username", cred.Username),
		zap.Int64("account_id", cred.AccountID),
	)

	message := fmt.Sprintf(msgAccountCreated, cred.Username, cred.Password, cred.AccountID)
	if r.loginURL != "" {
		message += fmt.Sprintf("\n\n🌐 <b>Login:</b> %s", r.loginURL)
	}

	// The copy buttons embed the literal credentials so the callback
	// handler can echo them back later.
	rows := [][]telegram.InlineKeyboardButton{
		{
			{Text: "📋 Copy Username", CallbackData: copyUsernamePrefix + cred.Username},
			{Text: "🔑 Copy Password", CallbackData: copyPasswordPrefix + cred.Password},
		},
	}
	if r.loginURL != "" {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: "🌐 Open Login Page", URL: r.loginURL},
		})
	}

	keyboard := telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
	if err := r.client.SendMessageWithKeyboard(chatID, message, keyboard); err != nil {
		metrics.SendFailuresTotal.Inc()
		r.logger.Error("Failed to send credentials",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// handleListUsers is a stub kept on purpose until the panel exposes a
// safe listing.
func (r *Router) handleListUsers(chatID int64) {
	metrics.CommandsTotal.WithLabelValues("listusers", "ok").Inc()
	r.send(chatID, msgListNotReady)
}

// handleHelp sends the detailed command reference.
func (r *Router) handleHelp(chatID int64) {
	metrics.CommandsTotal.WithLabelValues("help", "ok").Inc()
	r.send(chatID, msgHelp)
}

// handleStart sends the main menu.
func (r *Router) handleStart(chatID int64) {
	metrics.CommandsTotal.WithLabelValues("start", "ok").Inc()
	r.send(chatID, msgStart)
}
