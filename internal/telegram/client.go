// Package telegram is a thin client for the subset of the Telegram Bot API
// the bot consumes: outbound sends, callback acknowledgments, long-poll
// update fetches and webhook management.
package telegram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.telegram.org"

// ErrNoToken is returned by every API call when the bot token is not
// configured. Callers treat it like any other transport failure.
var ErrNoToken = errors.New("telegram: bot token not configured")

// Client issues plain JSON-over-HTTP calls against the Bot API. It holds
// no state beyond the token and is safe for concurrent use.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the given bot token. An empty token is
// allowed: every call then fails with ErrNoToken instead of crashing.
func NewClient(token string, logger *zap.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		// Must sit above the long-poll wait so getUpdates can block
		// server-side without tripping the client timeout.
		http:   &http.Client{Timeout: 40 * time.Second},
		logger: logger,
	}
}

// apiResponse is the Bot API envelope around every method result.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

func (c *Client) call(method string, payload any, result any) error {
	if c.token == "" {
		c.logger.Error("Bot token not configured, dropping API call",
			zap.String("method", method),
		)
		return ErrNoToken
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !api.OK {
		return fmt.Errorf("telegram %s: %s", method, api.Description)
	}
	if result != nil {
		if err := json.Unmarshal(api.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

// SendMessage sends an HTML-formatted text message to a chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	return c.call("sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}, nil)
}

// SendMessageWithKeyboard sends an HTML-formatted message with an inline
// keyboard attached.
func (c *Client) SendMessageWithKeyboard(chatID int64, text string, keyboard InlineKeyboardMarkup) error {
	return c.call("sendMessage", map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"parse_mode":   "HTML",
		"reply_markup": keyboard,
	}, nil)
}

// AnswerCallbackQuery acknowledges an inline button press so the client
// side loading indicator clears.
func (c *Client) AnswerCallbackQuery(callbackID, text string) error {
	return c.call("answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
		"text":              text,
		"show_alert":        false,
	}, nil)
}

// GetUpdates long-polls for updates with id >= offset, blocking server
// side for up to timeoutSeconds before returning an empty batch.
func (c *Client) GetUpdates(offset int64, timeoutSeconds int) ([]Update, error) {
	var updates []Update
	err := c.call("getUpdates", map[string]any{
		"offset":  offset,
		"timeout": timeoutSeconds,
	}, &updates)
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// SetWebhook registers url as the push destination for updates.
func (c *Client) SetWebhook(url string) error {
	return c.call("setWebhook", map[string]any{"url": url}, nil)
}

// GetWebhookInfo reports the currently registered webhook.
func (c *Client) GetWebhookInfo() (*WebhookInfo, error) {
	var info WebhookInfo
	if err := c.call("getWebhookInfo", struct{}{}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
