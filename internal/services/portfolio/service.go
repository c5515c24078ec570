// Package portfolio implements portfolio and holding CRUD on top of the
// storage layer. All business rules live here; handlers only translate
// HTTP to these calls.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// Service owns portfolio and holding lifecycle.
type Service struct {
	storage interfaces.PortfolioStorage
	logger  arbor.ILogger
}

// NewService creates a portfolio service.
func NewService(storage interfaces.PortfolioStorage, logger arbor.ILogger) *Service {
	return &Service{storage: storage, logger: logger}
}

// CreatePortfolio creates a portfolio for a user.
func (s *Service) CreatePortfolio(ctx context.Context, userID, name string) (*models.Portfolio, error) {
	now := time.Now()
	p := &models.Portfolio{
		ID:        common.NewPortfolioID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.CreatePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	s.logger.Info().
		Str("portfolio_id", p.ID).
		Str("user_id", userID).
		Msg("Portfolio created")

	return p, nil
}

// GetPortfolio returns one portfolio by id.
func (s *Service) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	return s.storage.GetPortfolio(ctx, id)
}

// ListPortfolios returns all portfolios belonging to a user.
func (s *Service) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	return s.storage.ListPortfolios(ctx, userID)
}

// RenamePortfolio updates a portfolio's display name.
func (s *Service) RenamePortfolio(ctx context.Context, id, name string) (*models.Portfolio, error) {
	p, err := s.storage.GetPortfolio(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = name
	p.UpdatedAt = time.Now()

	if err := s.storage.UpdatePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return p, nil
}

// DeletePortfolio removes a portfolio and its holdings.
func (s *Service) DeletePortfolio(ctx context.Context, id string) error {
	holdings, err := s.storage.ListHoldings(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list holdings for deletion: %w", err)
	}
	for _, h := range holdings {
		if err := s.storage.DeleteHolding(ctx, h.ID); err != nil {
			return fmt.Errorf("failed to delete holding %s: %w", h.ID, err)
		}
	}

	if err := s.storage.DeletePortfolio(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("portfolio_id", id).
		Int("holdings_removed", len(holdings)).
		Msg("Portfolio deleted")

	return nil
}

// HoldingInput carries the writable fields of a holding.
type HoldingInput struct {
	SecurityCode    string
	Shares          float64
	AverageCost     float64
	LivePrice       *float64
	ConfidenceLevel int
}

// AddHolding creates a holding inside a portfolio. The portfolio must
// exist.
func (s *Service) AddHolding(ctx context.Context, portfolioID string, in HoldingInput) (*models.Holding, error) {
	if _, err := s.storage.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	now := time.Now()
	h := &models.Holding{
		ID:              common.NewHoldingID(),
		PortfolioID:     portfolioID,
		SecurityCode:    in.SecurityCode,
		Shares:          in.Shares,
		AverageCost:     in.AverageCost,
		LivePrice:       in.LivePrice,
		ConfidenceLevel: in.ConfidenceLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.LivePrice != nil {
		h.PricedAt = &now
	}

	if err := s.storage.CreateHolding(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	return h, nil
}

// GetHolding returns one holding by id.
func (s *Service) GetHolding(ctx context.Context, id string) (*models.Holding, error) {
	return s.storage.GetHolding(ctx, id)
}

// ListHoldings returns the holdings of a portfolio.
func (s *Service) ListHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	return s.storage.ListHoldings(ctx, portfolioID)
}

// UpdateHolding replaces the writable fields of a holding in place.
func (s *Service) UpdateHolding(ctx context.Context, id string, in HoldingInput) (*models.Holding, error) {
	h, err := s.storage.GetHolding(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	h.SecurityCode = in.SecurityCode
	h.Shares = in.Shares
	h.AverageCost = in.AverageCost
	h.ConfidenceLevel = in.ConfidenceLevel
	h.UpdatedAt = now
	if in.LivePrice != nil {
		h.LivePrice = in.LivePrice
		h.PricedAt = &now
	}

	if err := s.storage.UpdateHolding(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	return h, nil
}

// DeleteHolding removes a holding by id.
func (s *Service) DeleteHolding(ctx context.Context, id string) error {
	return s.storage.DeleteHolding(ctx, id)
}
