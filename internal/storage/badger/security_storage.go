package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// SecurityStorage implements the SecurityStorage interface for Badger
type SecurityStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSecurityStorage creates a new SecurityStorage instance
func NewSecurityStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SecurityStorage {
	return &SecurityStorage{
		db:     db,
		logger: logger,
	}
}

// UpsertSecurities writes a batch of catalog records.
func (s *SecurityStorage) UpsertSecurities(ctx context.Context, securities []models.Security) error {
	for i := range securities {
		sec := securities[i]
		if sec.Code == "" {
			continue
		}
		if err := s.db.Store().Upsert(sec.Code, &sec); err != nil {
			return fmt.Errorf("failed to upsert security %s: %w", sec.Code, err)
		}
	}
	return nil
}

// GetSecurity returns one security by code.
func (s *SecurityStorage) GetSecurity(ctx context.Context, code string) (*models.Security, error) {
	var sec models.Security
	err := s.db.Store().Get(code, &sec)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get security: %w", err)
	}
	return &sec, nil
}

// ListActive returns active securities sorted by market cap descending.
// limit <= 0 returns all.
func (s *SecurityStorage) ListActive(ctx context.Context, limit int) ([]models.Security, error) {
	var securities []models.Security
	query := badgerhold.Where("Active").Eq(true).SortBy("MarketCap").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := s.db.Store().Find(&securities, query); err != nil {
		return nil, fmt.Errorf("failed to list active securities: %w", err)
	}
	if securities == nil {
		securities = []models.Security{}
	}
	return securities, nil
}

// Count returns the total number of catalog records.
func (s *SecurityStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Security{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count securities: %w", err)
	}
	return int(count), nil
}
