package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nastaran/internal/bot"
	"nastaran/internal/config"
	"nastaran/internal/handler"
	"nastaran/internal/middleware"
	"nastaran/internal/repository/postgres"
	"nastaran/internal/service"
	"nastaran/internal/state"
	"nastaran/internal/telegram"
	"nastaran/internal/weather"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Nastaran Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

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

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	ideaRepo := postgres.NewIdeaRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	inspRepo := postgres.NewInspirationRepo(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	ideaService := service.NewIdeaService(ideaRepo)
	noteService := service.NewNoteService(noteRepo)
	inspService := service.NewInspirationService(inspRepo)
	weatherClient := weather.New(cfg.WeatherCacheTTL, logger)

	// Conversation state lives in memory and is lost on restart
	intents := state.NewIntentStore()
	edits := state.NewEditStore()
	citySearch := state.NewIntentStore()

	// Initialize Telegram bot
	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: newPoller(cfg.Webhook),
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil {
				fields = append(fields, zap.Int("update_id", c.Update().ID))
			}
			logger.Error("Update processing failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.Bool("webhook", cfg.Webhook.Enabled()))

	messenger := telegram.NewMessenger(tb, logger)

	// Initialize handler
	h := handler.New(handler.Deps{
		Messenger:    messenger,
		Users:        userService,
		Ideas:        ideaService,
		Notes:        noteService,
		Inspirations: inspService,
		Weather:      weatherClient,
		Intents:      intents,
		Edits:        edits,
		CitySearch:   citySearch,
		Logger:       logger,
	})

	registry, err := bot.NewRegistry(h.Commands(), h.Updates())
	if err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	dispatcher := bot.NewDispatcher(
		bot.NewCommandRouter(registry),
		bot.NewUpdateRouter(registry),
		handler.ButtonCommands(),
		messenger,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Middleware must be installed before endpoints are bound
	tb.Use(middleware.Recover(logger), middleware.Logging(logger))
	telegram.Register(ctx, tb, dispatcher, cfg.UpdateTimeout)

	logger.Info("Handlers registered", zap.Strings("commands", registry.Commands()))

	// Start cleanup job in background
	janitor := service.NewStateJanitor(map[string]state.Expirer{
		"intents":     intents,
		"edits":       edits,
		"city_search": citySearch,
	}, cfg.StateTTL, logger)

	go runCleanupJob(ctx, janitor, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		tb.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	tb.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// newPoller picks a webhook when a public URL is configured, long polling otherwise
func newPoller(cfg config.WebhookConfig) tele.Poller {
	if cfg.Enabled() {
		return &tele.Webhook{
			Listen:   cfg.Listen,
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.URL},
		}
	}
	return &tele.LongPoller{Timeout: 10 * time.Second}
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

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

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

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob sweeps abandoned conversation state every minute
func runCleanupJob(ctx context.Context, janitor *service.StateJanitor, logger *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			if removed := janitor.Sweep(); removed > 0 {
				logger.Debug("State sweep finished", zap.Int("removed", removed))
			}
		}
	}
}
