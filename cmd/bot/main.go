package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panelbot/internal/bot"
	"panelbot/internal/config"
	"panelbot/internal/poller"
	"panelbot/internal/repository/postgres"
	"panelbot/internal/server"
	"panelbot/internal/service"
	"panelbot/internal/telegram"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Panel Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.BotToken == "" {
		logger.Warn("BOT_TOKEN not set; outbound Telegram calls will fail")
	}
	if len(cfg.AdminIDs) == 0 {
		logger.Warn("TELEGRAM_ADMIN_IDS not set; every sender is unauthorized")
	}

	logger.Info("Configuration loaded successfully", zap.String("mode", cfg.Mode))

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories and services
	accountRepo := postgres.NewAccountRepo(db)
	accountService := service.NewAccountService(accountRepo)

	// Initialize Telegram clients and command router
	client := telegram.NewClient(cfg.BotToken, logger)
	relayClient := telegram.NewClient(cfg.Relay.BotToken, logger)
	router := bot.NewRouter(client, accountService, cfg.AdminIDs, cfg.LoginURL, logger)

	logger.Info("Command router initialized", zap.Int("admins", len(cfg.AdminIDs)))

	// Select the update source. Polling and the webhook must never be
	// active at the same time; the mode switch is the only guard.
	p := poller.New(client, router, logger)
	switch cfg.Mode {
	case config.ModePolling:
		p.Start()
	case config.ModeWebhook:
		if cfg.WebhookURL == "" {
			logger.Warn("Webhook mode without WEBHOOK_URL; expecting webhook registered out of band")
		} else if err := client.SetWebhook(cfg.WebhookURL); err != nil {
			logger.Error("Failed to register webhook", zap.Error(err))
		} else {
			logger.Info("Webhook registered", zap.String("url", cfg.WebhookURL))
		}
	}

	// Start HTTP server (webhook endpoint, admin API, metrics)
	srv := server.New(router, client, relayClient, cfg, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Routes(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	p.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}
