package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	security  interfaces.SecurityStorage
	portfolio interfaces.PortfolioStorage
	alert     interfaces.AlertStorage
	kv        interfaces.KeyValueStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		security:  NewSecurityStorage(db, logger),
		portfolio: NewPortfolioStorage(db, logger),
		alert:     NewAlertStorage(db, logger),
		kv:        NewKVStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// SecurityStorage returns the Security storage interface
func (m *Manager) SecurityStorage() interfaces.SecurityStorage {
	return m.security
}

// PortfolioStorage returns the Portfolio storage interface
func (m *Manager) PortfolioStorage() interfaces.PortfolioStorage {
	return m.portfolio
}

// AlertStorage returns the Alert storage interface
func (m *Manager) AlertStorage() interfaces.AlertStorage {
	return m.alert
}

// KVStorage returns the KeyValue storage interface
func (m *Manager) KVStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close closes the underlying database
func (m *Manager) Close() error {
	return m.db.Close()
}
