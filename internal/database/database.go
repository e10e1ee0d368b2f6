// Package database opens the process-wide bbolt handle.
package database

import (
	"context"
	"fmt"

	"github.com/adedonha-games/adedonha/internal/logging"
	bolt "go.etcd.io/bbolt"
)

type Config struct {
	// Path to the bbolt file with persistent player stats
	FilePath string `envconfig:"ADEDONHA_DB_FILE_PATH" default:"adedonha.db"`
}

type DB struct {
	DB *bolt.DB
}

func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("creating db connection")

	db, err := bolt.Open(config.FilePath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("creating connection DB: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing DB connection")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("error close DB connection: %w", err)
	}

	return nil
}
