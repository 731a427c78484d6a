package store

import (
	"context"
	"fmt"

	"github.com/balance-app/balance-sync/internal/config"
	"github.com/balance-app/balance-sync/internal/logger"
)

// Storages groups the local repositories into a single value that can be
// passed around the service layer.
type Storages struct {
	// Records is the SQLite-backed repository holding every syncable and
	// device-local entity record.
	Records RecordRepository

	// Meta holds device identity, pairing state, and the sync cursor.
	Meta MetaRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.Path,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Records: NewRecordRepository(db, logger),
		Meta:    NewMetaRepository(db, logger),
	}, nil
}
