package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// PortfolioStorage implements the PortfolioStorage interface for Badger
type PortfolioStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPortfolioStorage creates a new PortfolioStorage instance
func NewPortfolioStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PortfolioStorage {
	return &PortfolioStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PortfolioStorage) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	if p.ID == "" {
		return fmt.Errorf("portfolio ID is required")
	}
	if err := s.db.Store().Insert(p.ID, p); err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	var p models.Portfolio
	err := s.db.Store().Get(id, &p)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return &p, nil
}

func (s *PortfolioStorage) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	err := s.db.Store().Find(&portfolios, badgerhold.Where("UserID").Eq(userID).Index("UserID").SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	if portfolios == nil {
		portfolios = []models.Portfolio{}
	}
	return portfolios, nil
}

func (s *PortfolioStorage) UpdatePortfolio(ctx context.Context, p *models.Portfolio) error {
	err := s.db.Store().Update(p.ID, p)
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) DeletePortfolio(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Portfolio{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) CreateHolding(ctx context.Context, h *models.Holding) error {
	if h.ID == "" {
		return fmt.Errorf("holding ID is required")
	}
	if err := s.db.Store().Insert(h.ID, h); err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetHolding(ctx context.Context, id string) (*models.Holding, error) {
	var h models.Holding
	err := s.db.Store().Get(id, &h)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return &h, nil
}

func (s *PortfolioStorage) ListHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	var holdings []models.Holding
	err := s.db.Store().Find(&holdings, badgerhold.Where("PortfolioID").Eq(portfolioID).Index("PortfolioID").SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	return holdings, nil
}

func (s *PortfolioStorage) UpdateHolding(ctx context.Context, h *models.Holding) error {
	err := s.db.Store().Update(h.ID, h)
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) DeleteHolding(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Holding{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}
