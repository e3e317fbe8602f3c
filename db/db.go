package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/splice-cli/logger"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Open opens or creates the SQLite database at path and brings its schema up
// to date. An empty path uses DefaultPath. Parent directories are created if
// they don't exist.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	applied, err := runMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(applied) > 0 {
		logger.L().Info("database migrated", zap.String("path", path), zap.Ints("versions", applied))
	}

	return db, nil
}

// DefaultPath returns ~/.local/share/splice-cli/data.db.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "splice-cli", "data.db"), nil
}
