package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// AlertStorage implements the AlertStorage interface for Badger
type AlertStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAlertStorage creates a new AlertStorage instance
func NewAlertStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AlertStorage {
	return &AlertStorage{
		db:     db,
		logger: logger,
	}
}

func (s *AlertStorage) CreateAlert(ctx context.Context, a *models.Alert) error {
	if a.ID == "" {
		return fmt.Errorf("alert ID is required")
	}
	if err := s.db.Store().Insert(a.ID, a); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (s *AlertStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	var a models.Alert
	err := s.db.Store().Get(id, &a)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &a, nil
}

func (s *AlertStorage) ListAlerts(ctx context.Context, userID string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.Store().Find(&alerts, badgerhold.Where("UserID").Eq(userID).Index("UserID").SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

func (s *AlertStorage) UpdateAlert(ctx context.Context, a *models.Alert) error {
	err := s.db.Store().Update(a.ID, a)
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	return nil
}

func (s *AlertStorage) DeleteAlert(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Alert{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}
