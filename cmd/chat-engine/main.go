package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/parleyhq/chat-engine/internal/auth"
	"github.com/parleyhq/chat-engine/internal/chat"
	"github.com/parleyhq/chat-engine/internal/cli"
	"github.com/parleyhq/chat-engine/internal/config"
	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/logger"
	"github.com/parleyhq/chat-engine/internal/seed"
	"github.com/parleyhq/chat-engine/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Module("main")

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}

	users := seed.Users()
	identity := auth.NewService(store, users)
	eventBus := domain.NewEventBus()

	session := chat.NewSession(store, identity, eventBus, chat.SeedData{
		Users:         users,
		Rooms:         seed.Rooms(),
		Messages:      seed.Messages(),
		CannedReplies: seed.CannedReplies(),
	}, chat.DefaultSessionConfig())

	session.Initialize(ctx)
	defer session.Close()

	handler := cli.NewCommandHandler(session, identity, eventBus)

	// Setup signal handling
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	var runErr error
	switch cli.Mode(cfg.Mode) {
	case cli.ModeHeadless:
		runErr = cli.NewHeadlessCLI(handler).Run(ctx)
	default:
		runErr = cli.NewInteractiveCLI(handler).Run(ctx)
	}
	if runErr != nil && runErr != context.Canceled {
		log.Error().Err(runErr).Msg("CLI error")
	}

	// Best-effort presence update on the way out
	session.UpdatePresence(context.Background(), false)
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddress, err)
		}
		return storage.NewRedisStore(client), nil

	case "memory":
		return storage.NewMemoryStore(), nil

	default:
		db, err := openDatabase(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return storage.NewGormStore(db), nil
	}
}

func openDatabase(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.NewGormLogger("gorm"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	db.Exec("PRAGMA journal_mode=WAL")

	if err := db.AutoMigrate(&storage.EntryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
