package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"inspection-service/internal/api"
	"inspection-service/internal/closure"
	"inspection-service/internal/config"
	"inspection-service/internal/db"
	"inspection-service/internal/logging"
	"inspection-service/internal/memdb"
	"inspection-service/internal/models"
	"inspection-service/internal/notify"
	"inspection-service/internal/session"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Select storage: Postgres when a DSN is configured, the seeded
	// in-memory store otherwise.
	var store closure.Storage
	if cfg.DB.DSN != "" {
		dbConn, err := db.New(cfg.DB.DSN)
		if err != nil {
			logger.Errorf("Failed to connect to database: %v", err)
			log.Fatalf("Database connection failed: %v", err)
		}
		defer dbConn.Close()
		store = dbConn
		logger.Infof("Using Postgres storage")
	} else {
		store = memdb.Seeded()
		logger.Infof("DB_DSN not set, using seeded in-memory storage")
	}

	// Resolve the fixed operator for the session stub.
	operator := findOperator(store, cfg.Session.OperatorEmail, logger)
	sess := session.NewFixed(operator)

	// Build the shared notification fan-out: one subject and one feed for
	// the whole process.
	feed := notify.NewFeed(cfg.Feed.Capacity)
	hub := notify.NewHub(logger)
	subject := notify.NewSubject(logger)
	subject.Register(notify.NewDisplayChannel(feed, hub, logger))

	var sender notify.Sender
	if cfg.Email.Username != "" && cfg.Email.Password != "" {
		sender = notify.NewSMTPSender(cfg)
	} else {
		logger.Warnf("SMTP credentials absent, email notifications will be simulated")
		sender = notify.NewSimulatedSender(logger)
	}
	subject.Register(notify.NewEmailChannel(sender, notify.DefaultBackoff, logger))

	if cfg.Kafka.Broker != "" {
		stream := notify.NewStreamChannel(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		defer stream.Close()
		subject.Register(stream)
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		subject.Register(notify.NewTelegramChannel(
			cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.RatePerSecond, logger))
	}

	svc := closure.New(store, sess, subject, logger)

	// Start API server
	handler := api.NewHandler(svc, feed, hub, logger)
	router := api.NewRouter(handler, logger, cfg)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
}

func findOperator(store closure.Storage, email string, logger *logging.Logger) *models.Employee {
	employees, err := store.ListEmployees(context.Background())
	if err != nil {
		logger.Errorf("Failed to resolve operator %s: %v", email, err)
		return nil
	}
	for _, e := range employees {
		if e.Email == email {
			return e
		}
	}
	logger.Warnf("Operator %s not found, closure requests will be rejected", email)
	return nil
}
