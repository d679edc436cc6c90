// Package server exposes the bot's HTTP surface: the webhook ingestion
// endpoint, the panel's command-relay and webhook-management API, and
// Prometheus metrics.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"panelbot/internal/config"
	"panelbot/internal/metrics"
	"panelbot/internal/telegram"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// WebhookPath is the route the platform pushes updates to.
const WebhookPath = "/api/telegram-webhook"

// Dispatcher consumes decoded updates.
type Dispatcher interface {
	HandleUpdate(u telegram.Update)
}

// BotAPI is the slice of the Telegram client the admin endpoints use.
type BotAPI interface {
	SendMessage(chatID int64, text string) error
	SetWebhook(url string) error
	GetWebhookInfo() (*telegram.WebhookInfo, error)
	GetUpdates(offset int64, timeoutSeconds int) ([]telegram.Update, error)
}

// Server handles the HTTP surface. The webhook handler is synchronous:
// one pushed update per request, dispatched before the response is
// written; retry on non-2xx is the platform's job.
type Server struct {
	dispatcher Dispatcher
	bot        BotAPI
	relay      BotAPI
	cfg        *config.Config
	logger     *zap.Logger
}

// New creates a server. relay is the sender-bot client used by the
// command-relay endpoint; it may be an unconfigured client.
func New(dispatcher Dispatcher, bot, relay BotAPI, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		dispatcher: dispatcher,
		bot:        bot,
		relay:      relay,
		cfg:        cfg,
		logger:     logger,
	}
}

// Routes builds the router with all endpoints registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post(WebhookPath, s.handleWebhook)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/api/send-telegram", s.handleSendTelegram)
		r.Post("/api/setup-bot-webhook", s.handleSetupWebhook)
		r.Get("/api/bot-status", s.handleBotStatus)
		r.Get("/api/debug/sender-updates", s.handleSenderUpdates)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// handleWebhook ingests one pushed update. The command router converts
// user-facing failures into chat messages itself, so a decoded update
// always acknowledges with 200.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Error("Failed to decode webhook update", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	metrics.UpdatesTotal.WithLabelValues("webhook", update.Kind()).Inc()
	s.dispatcher.HandleUpdate(update)

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type sendTelegramRequest struct {
	Command      string `json:"command"`
	TargetNumber string `json:"targetNumber"`
}

// handleSendTelegram relays a panel command to the downstream chat via
// the sender bot, falling back to handing it to the first admin through
// the main bot when no sender bot is configured.
func (s *Server) handleSendTelegram(w http.ResponseWriter, r *http.Request) {
	var req sendTelegramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Command == "" || req.TargetNumber == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing command or target number"})
		return
	}

	message := fmt.Sprintf("/%s %s", req.Command, req.TargetNumber)

	if s.cfg.Relay.BotToken != "" && s.cfg.Relay.ChatID != 0 {
		if err := s.relay.SendMessage(s.cfg.Relay.ChatID, message); err != nil {
			s.logger.Error("Failed to relay command",
				zap.String("command", req.Command),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to send command to Telegram bot"})
			return
		}
		s.logger.Info("Command relayed",
			zap.String("command", req.Command),
			zap.Int64("chat_id", s.cfg.Relay.ChatID),
		)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Command sent by sender bot: %s", message),
		})
		return
	}

	if len(s.cfg.AdminIDs) == 0 {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Admin ID not configured"})
		return
	}
	adminID := s.cfg.AdminIDs[0]

	instruction := fmt.Sprintf("🤖 Forward this to the relay bot:\n\n%s", message)
	if err := s.bot.SendMessage(adminID, instruction); err != nil {
		s.logger.Error("Failed to send command to admin", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to send command to Telegram bot"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Command sent to admin for forwarding: %s", message),
	})
}

type setupWebhookRequest struct {
	WebhookURL string `json:"webhookUrl"`
}

// handleSetupWebhook registers a webhook URL with the platform. The
// webhook-info read back is informational only; registration already
// succeeded by then.
func (s *Server) handleSetupWebhook(w http.ResponseWriter, r *http.Request) {
	var req setupWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.WebhookURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing webhook URL"})
		return
	}

	if err := s.bot.SetWebhook(req.WebhookURL); err != nil {
		s.logger.Error("Failed to setup webhook",
			zap.String("url", req.WebhookURL),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to setup webhook"})
		return
	}

	if info, err := s.bot.GetWebhookInfo(); err == nil {
		s.logger.Info("Webhook registered",
			zap.String("url", info.URL),
			zap.Int("pending_updates", info.PendingUpdateCount),
		)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Webhook setup successfully",
	})
}

// handleBotStatus reports configuration flags without leaking values.
func (s *Server) handleBotStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"botConfigured":   s.cfg.BotToken != "",
		"adminConfigured": len(s.cfg.AdminIDs) > 0,
		"webhookEndpoint": WebhookPath,
	})
}

// handleSenderUpdates reads recent updates seen by the sender bot, for
// checking whether the downstream chat is reachable.
func (s *Server) handleSenderUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := s.relay.GetUpdates(0, 0)
	if err != nil {
		s.logger.Error("Failed to fetch sender bot updates", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get sender bot updates"})
		return
	}
	if updates == nil {
		updates = []telegram.Update{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"result": updates,
	})
}

// requireToken guards the admin endpoints with the static API token. When
// no token is configured the endpoints are disabled outright.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIToken == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
			return
		}
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.APIToken)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
