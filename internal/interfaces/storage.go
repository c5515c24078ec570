package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrKeyNotFound is returned when a KV key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// SecurityStorage persists the synced security catalog.
type SecurityStorage interface {
	UpsertSecurities(ctx context.Context, securities []models.Security) error
	GetSecurity(ctx context.Context, code string) (*models.Security, error)
	// ListActive returns active securities sorted by market cap descending.
	// limit <= 0 returns all.
	ListActive(ctx context.Context, limit int) ([]models.Security, error)
	Count(ctx context.Context) (int, error)
}

// PortfolioStorage persists portfolios and their holdings.
type PortfolioStorage interface {
	CreatePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, p *models.Portfolio) error
	DeletePortfolio(ctx context.Context, id string) error

	CreateHolding(ctx context.Context, h *models.Holding) error
	GetHolding(ctx context.Context, id string) (*models.Holding, error)
	ListHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error)
	UpdateHolding(ctx context.Context, h *models.Holding) error
	DeleteHolding(ctx context.Context, id string) error
}

// AlertStorage persists alert preferences.
type AlertStorage interface {
	CreateAlert(ctx context.Context, a *models.Alert) error
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	ListAlerts(ctx context.Context, userID string) ([]models.Alert, error)
	UpdateAlert(ctx context.Context, a *models.Alert) error
	DeleteAlert(ctx context.Context, id string) error
}

// KeyValuePair is a stored key/value entry.
type KeyValuePair struct {
	Key         string `badgerhold:"key"`
	Value       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KeyValueStorage provides simple string KV storage, used for the
// disclosure cache and catalog sync metadata.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value, description string) error
	Delete(ctx context.Context, key string) error
}

// StorageManager aggregates all storage backends behind one lifecycle.
type StorageManager interface {
	SecurityStorage() SecurityStorage
	PortfolioStorage() PortfolioStorage
	AlertStorage() AlertStorage
	KVStorage() KeyValueStorage
	Close() error
}
