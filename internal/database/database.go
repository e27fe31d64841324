package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

var globalDB *Database

// Initialize opens the SQLite store and creates the schema. The engine
// itself never touches it; only sanction outcomes and guild settings are
// persisted.
func Initialize(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	globalDB = &Database{db: db}

	if err := globalDB.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// GetDB returns the global database instance, nil when uninitialized.
func GetDB() *Database {
	return globalDB
}

func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_settings (
		guild_id TEXT PRIMARY KEY,
		enabled INTEGER DEFAULT 1,
		log_channel_id TEXT DEFAULT '',
		ignored_members TEXT DEFAULT '',
		ignored_channels TEXT DEFAULT '',
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sanctions (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		reason TEXT NOT NULL,
		content TEXT DEFAULT '',
		by_duplicate INTEGER DEFAULT 0,
		detection_us INTEGER DEFAULT 0,
		applied_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sanctions_guild ON sanctions(guild_id);
	CREATE INDEX IF NOT EXISTS idx_sanctions_user ON sanctions(user_id);
	CREATE INDEX IF NOT EXISTS idx_sanctions_applied ON sanctions(applied_at);
	`

	_, err := d.db.Exec(schema)
	return err
}
