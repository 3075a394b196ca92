// Package badger implements persistence on BadgerDB via badgerhold:
// jobs, the job queue, analysis results, and competitor records.
package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/sitescore/internal/common"
)

// DB manages the Badger database connection
type DB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
	config common.BadgerConfig
}

// NewDB opens the Badger database at the configured path
func NewDB(config common.BadgerConfig, logger arbor.ILogger) (*DB, error) {
	if config.ResetOnStartup {
		if _, err := os.Stat(config.Path); err == nil {
			logger.Debug().Str("path", config.Path).Msg("Deleting existing database (reset_on_startup=true)")
			if err := os.RemoveAll(config.Path); err != nil {
				logger.Warn().Err(err).Str("path", config.Path).Msg("Failed to delete database directory")
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	badgerOptions := badger.DefaultOptions(config.Path).
		WithLogger(nil). // arbor handles logging
		WithNumVersionsToKeep(1)

	options := badgerhold.DefaultOptions
	options.Options = badgerOptions

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", config.Path).Msg("Badger database initialized")

	return &DB{
		store:  store,
		logger: logger,
		config: config,
	}, nil
}

// Store returns the underlying badgerhold store
func (d *DB) Store() *badgerhold.Store {
	return d.store
}

// Close closes the database connection
func (d *DB) Close() error {
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}
