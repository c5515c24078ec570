// Package alerts implements alert-preference CRUD.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// Service owns alert lifecycle.
type Service struct {
	storage interfaces.AlertStorage
	logger  arbor.ILogger
}

// NewService creates an alert service.
func NewService(storage interfaces.AlertStorage, logger arbor.ILogger) *Service {
	return &Service{storage: storage, logger: logger}
}

// AlertInput carries the writable fields of an alert.
type AlertInput struct {
	SecurityCode string
	Kind         string
	Threshold    float64
	Enabled      bool
}

// Create creates an alert for a user.
func (s *Service) Create(ctx context.Context, userID string, in AlertInput) (*models.Alert, error) {
	now := time.Now()
	a := &models.Alert{
		ID:           common.NewAlertID(),
		UserID:       userID,
		SecurityCode: in.SecurityCode,
		Kind:         in.Kind,
		Threshold:    in.Threshold,
		Enabled:      in.Enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateAlert(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.Info().
		Str("alert_id", a.ID).
		Str("user_id", userID).
		Str("kind", in.Kind).
		Msg("Alert created")

	return a, nil
}

// Get returns one alert by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Alert, error) {
	return s.storage.GetAlert(ctx, id)
}

// List returns all alerts belonging to a user.
func (s *Service) List(ctx context.Context, userID string) ([]models.Alert, error) {
	return s.storage.ListAlerts(ctx, userID)
}

// Update replaces the writable fields of an alert in place.
func (s *Service) Update(ctx context.Context, id string, in AlertInput) (*models.Alert, error) {
	a, err := s.storage.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	a.SecurityCode = in.SecurityCode
	a.Kind = in.Kind
	a.Threshold = in.Threshold
	a.Enabled = in.Enabled
	a.UpdatedAt = time.Now()

	if err := s.storage.UpdateAlert(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}

	return a, nil
}

// Delete removes an alert by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.storage.DeleteAlert(ctx, id)
}
