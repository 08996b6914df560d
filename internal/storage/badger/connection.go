package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/timshannon/badgerhold/v4"
)

// BadgerDB holds the Badger store backing the delivery log. The log is small
// and append-mostly, so the store runs with a single version per key and
// compacts on close rather than carrying background GC.
type BadgerDB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
	config *common.BadgerConfig
}

// NewBadgerDB opens the delivery log store at the configured path
func NewBadgerDB(logger arbor.ILogger, config *common.BadgerConfig) (*BadgerDB, error) {
	if config.ResetOnStartup {
		if _, err := os.Stat(config.Path); err == nil {
			logger.Debug().Str("path", config.Path).Msg("Deleting existing delivery log (reset_on_startup=true)")
			if err := os.RemoveAll(config.Path); err != nil {
				logger.Warn().Err(err).Str("path", config.Path).Msg("Failed to delete delivery log directory")
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create delivery log directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Options = badger.DefaultOptions(config.Path).
		WithLogger(nil). // arbor logs the storage layer
		WithNumVersionsToKeep(1).
		WithCompactL0OnClose(true)

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open delivery log store: %w", err)
	}

	logger.Debug().Str("path", config.Path).Msg("Delivery log store opened")

	return &BadgerDB{
		store:  store,
		logger: logger,
		config: config,
	}, nil
}

// Store returns the underlying badgerhold store
func (b *BadgerDB) Store() *badgerhold.Store {
	return b.store
}

// Close flushes and closes the store
func (b *BadgerDB) Close() error {
	if b.store == nil {
		return nil
	}
	// Value-log GC before close keeps the on-disk footprint bounded; ErrNoRewrite
	// just means there was nothing to reclaim.
	if err := b.store.Badger().RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
		b.logger.Debug().Err(err).Msg("Delivery log value GC skipped")
	}
	return b.store.Close()
}
