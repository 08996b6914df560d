package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	delivery interfaces.DeliveryStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		delivery: NewDeliveryStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// DeliveryStorage returns the delivery log storage interface
func (m *Manager) DeliveryStorage() interfaces.DeliveryStorage {
	return m.delivery
}

// Close closes the underlying database
func (m *Manager) Close() error {
	return m.db.Close()
}
