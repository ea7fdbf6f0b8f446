package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	mainLogger := logger.Component("main")
	if !cfg.CheckTokens(mainLogger) {
		logFile.Close()
		fmt.Fprintln(os.Stderr, config.MissingTokensMessage)
		os.Exit(1)
	}
	mainLogger.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"retry_period": cfg.RetryPeriod.String(),
		"endpoint":     cfg.Endpoint,
	}).Info("Configuration loaded.")

	// Optional delivery journal
	var journal notification.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		if err := idb.EnsureSchema(context.Background(), db); err != nil {
			mainLogger.WithError(err).Fatal("Could not prepare database schema")
		}
		journal = idb.NewPostgresNotificationRepository(db)
		mainLogger.Info("Delivery journal enabled.")
	}

	// Initialize Telegram Bot
	telebotLogger := logger.Component("telebot")
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := telebotLogger.WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Telegram handler failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	telegram.RegisterBotCommands(bot, cfg.TelegramChatID, cfg.RetryPeriod, logger.Component("commands"))

	notifier := app.NewNotificationService(
		telegram.NewTelebotAdapter(bot),
		journal,
		cfg.TelegramChatID,
		logger.Component("notifier"),
	)
	apiClient := practicum.NewClient(
		cfg.PracticumToken,
		practicum.WithEndpoint(cfg.Endpoint),
		practicum.WithTimeout(cfg.HTTPTimeout),
		practicum.WithLogger(logger.Component("practicum")),
	)
	pollService := app.NewPollService(
		apiClient,
		app.ResponseChecker{Strict: cfg.StrictResponse},
		notifier,
		cfg.InitialLookback,
		logger.Component("poller"),
	)

	pollScheduler := scheduler.NewPollScheduler(pollService, cfg.RetryPeriod, logger.Component("scheduler"))
	if err := pollScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start poll scheduler")
	}

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()
	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	pollScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
