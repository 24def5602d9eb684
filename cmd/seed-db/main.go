package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/parleyhq/chat-engine/internal/seed"
	"github.com/parleyhq/chat-engine/internal/storage"
)

func main() {
	// Default to a database in the current directory
	dbPath := "chat.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	fmt.Printf("Using database at: %s\n", dbPath)

	db, err := initDatabase(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store := storage.NewGormStore(db)
	ctx := context.Background()

	raw, err := json.Marshal(seed.Messages())
	if err != nil {
		log.Fatalf("Failed to encode seed messages: %v", err)
	}

	if err := store.Set(ctx, storage.KeyMessages, string(raw)); err != nil {
		log.Fatalf("Failed to write seed messages: %v", err)
	}

	fmt.Printf("Seeded %d messages under %q\n", len(seed.Messages()), storage.KeyMessages)
	fmt.Printf("Database location: %s\n", dbPath)
}

func initDatabase(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
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
