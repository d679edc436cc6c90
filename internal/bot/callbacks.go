package bot

import (
	"fmt"
	"strings"

	"panelbot/internal/telegram"

	"go.uber.org/zap"
)

// Callback payload prefixes; the remainder of the data string is the
// literal value to echo back.
const (
	copyUsernamePrefix = "copy_username_"
	copyPasswordPrefix = "copy_password_"
)

// handleCallback processes an inline button press. Every branch answers
// the callback exactly once so the client-side spinner always clears.
func (r *Router) handleCallback(q *telegram.CallbackQuery) {
	if !r.authorized(q.From.ID) {
		r.logger.Warn("Unauthorized callback",
			zap.Int64("user_id", q.From.ID),
			zap.String("data", q.Data),
		)
		r.answer(q.ID, cbNotAllowed)
		return
	}

	if q.Message == nil {
		// No originating chat to echo into.
		r.answer(q.ID, cbUnrecognized)
		return
	}
	chatID := q.Message.Chat.ID

	switch {
	case strings.HasPrefix(q.Data, copyUsernamePrefix):
		username := strings.TrimPrefix(q.Data, copyUsernamePrefix)
		r.send(chatID, fmt.Sprintf("📋 Username: <code>%s</code>", username))
		r.answer(q.ID, cbUsernameReady)
	case strings.HasPrefix(q.Data, copyPasswordPrefix):
		password := strings.TrimPrefix(q.Data, copyPasswordPrefix)
		r.send(chatID, fmt.Sprintf("🔑 Password: <code>%s</code>", password))
		r.answer(q.ID, cbPasswordReady)
	default:
		r.answer(q.ID, cbUnrecognized)
	}
}
