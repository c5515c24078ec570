package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

const lastSyncKey = "catalog:last_sync"

// Suggestion is a lightweight search suggestion: just enough to render a
// typeahead row.
type Suggestion struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Market models.Market `json:"market"`
}

// Service owns the security master data lifecycle.
type Service struct {
	source  interfaces.CatalogSource
	storage interfaces.SecurityStorage
	kv      interfaces.KeyValueStorage
	logger  arbor.ILogger
}

// NewService creates a catalog service.
func NewService(source interfaces.CatalogSource, storage interfaces.SecurityStorage, kv interfaces.KeyValueStorage, logger arbor.ILogger) *Service {
	return &Service{
		source:  source,
		storage: storage,
		kv:      kv,
		logger:  logger,
	}
}

// Sync fetches the full catalog from the source and upserts it.
func (s *Service) Sync(ctx context.Context) error {
	securities, err := s.source.FetchSecurities(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch security catalog: %w", err)
	}

	if err := s.storage.UpsertSecurities(ctx, securities); err != nil {
		return fmt.Errorf("failed to persist security catalog: %w", err)
	}

	if s.kv != nil {
		if err := s.kv.Set(ctx, lastSyncKey, time.Now().Format(time.RFC3339), "catalog sync time"); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to record catalog sync time")
		}
	}

	s.logger.Info().
		Int("count", len(securities)).
		Msg("Security catalog synced")

	return nil
}

// LastSyncTime returns when the catalog was last synced, or the zero time
// if it never was.
func (s *Service) LastSyncTime(ctx context.Context) time.Time {
	if s.kv == nil {
		return time.Time{}
	}
	raw, err := s.kv.Get(ctx, lastSyncKey)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Get returns a single security by code.
func (s *Service) Get(ctx context.Context, code string) (*models.Security, error) {
	return s.storage.GetSecurity(ctx, code)
}

// TopByMarketCap returns the n largest active securities.
func (s *Service) TopByMarketCap(ctx context.Context, n int) ([]models.Security, error) {
	return s.storage.ListActive(ctx, n)
}

// ListActive returns all active securities sorted by market cap descending.
func (s *Service) ListActive(ctx context.Context) ([]models.Security, error) {
	return s.storage.ListActive(ctx, 0)
}

// Search returns active securities matching the query by case-insensitive
// substring on code, name, sector, or market, capped at limit. An empty
// query returns no matches.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Security, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Security{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	all, err := s.storage.ListActive(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}

	needle := strings.ToLower(query)
	matches := make([]models.Security, 0, limit)
	for _, sec := range all {
		if matchesSecurity(sec, needle) {
			matches = append(matches, sec)
			if len(matches) >= limit {
				break
			}
		}
	}

	return matches, nil
}

// Suggest returns lightweight typeahead suggestions for a partial query,
// matching on code or name only.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	all, err := s.storage.ListActive(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities: %w", err)
	}

	needle := strings.ToLower(query)
	suggestions := make([]Suggestion, 0, limit)
	for _, sec := range all {
		if strings.Contains(strings.ToLower(sec.Code), needle) ||
			strings.Contains(strings.ToLower(sec.Name), needle) {
			suggestions = append(suggestions, Suggestion{
				Code:   sec.Code,
				Name:   sec.Name,
				Market: sec.Market,
			})
			if len(suggestions) >= limit {
				break
			}
		}
	}

	return suggestions, nil
}

// Count returns the number of catalog records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.Count(ctx)
}

func matchesSecurity(sec models.Security, needle string) bool {
	return strings.Contains(strings.ToLower(sec.Code), needle) ||
		strings.Contains(strings.ToLower(sec.Name), needle) ||
		strings.Contains(strings.ToLower(sec.Sector), needle) ||
		strings.Contains(strings.ToLower(string(sec.Market)), needle)
}
