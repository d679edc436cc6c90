// Package metrics defines Prometheus metrics for the bot.
//
// Metric naming follows Prometheus conventions: panelbot_ prefix for all
// custom metrics, _total suffix for counters. Everything registers with
// the default registry and is served on the HTTP server's /metrics route.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// UpdatesTotal counts dispatched updates by ingestion source and kind.
	UpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panelbot_updates_total",
			Help: "Total updates dispatched by ingestion source and update kind.",
		},
		[]string{"source", "kind"},
	)

	// CommandsTotal counts handled text commands by verb and outcome.
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panelbot_commands_total",
			Help: "Total bot commands handled by verb and outcome.",
		},
		[]string{"command", "outcome"},
	)

	// AccountsCreatedTotal counts accounts provisioned through the bot.
	AccountsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "panelbot_accounts_created_total",
			Help: "Total panel accounts created via bot commands.",
		},
	)

	// SendFailuresTotal counts outbound Telegram API calls that failed.
	SendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "panelbot_send_failures_total",
			Help: "Total failed outbound Telegram API calls.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		UpdatesTotal,
		CommandsTotal,
		AccountsCreatedTotal,
		SendFailuresTotal,
	)
}
