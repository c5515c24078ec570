package disclosures

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

const (
	// DefaultLookbackDays is the default filing lookback window.
	DefaultLookbackDays = 30

	// DefaultCacheTTL bounds the rate of outbound calls to the source.
	// Freshness policy only; correctness never depends on the cache.
	DefaultCacheTTL = 5 * time.Minute

	cacheKey     = "disclosures:recent"
	cacheTimeKey = "disclosures:fetched_at"
)

// Service fetches raw filings and turns them into classified disclosures.
type Service struct {
	source       interfaces.DisclosureSource
	kv           interfaces.KeyValueStorage
	logger       arbor.ILogger
	lookbackDays int
	pageSize     int
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewService creates a disclosure service. kv may be nil, which disables
// the fetch cache.
func NewService(source interfaces.DisclosureSource, kv interfaces.KeyValueStorage, logger arbor.ILogger) *Service {
	return &Service{
		source:       source,
		kv:           kv,
		logger:       logger,
		lookbackDays: DefaultLookbackDays,
		pageSize:     100,
		cacheTTL:     DefaultCacheTTL,
		now:          time.Now,
	}
}

// WithLookbackDays sets the filing lookback window.
func (s *Service) WithLookbackDays(days int) *Service {
	if days > 0 {
		s.lookbackDays = days
	}
	return s
}

// WithPageSize sets the max filings per fetch.
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// WithCacheTTL sets the fetch cache TTL.
func (s *Service) WithCacheTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

// WithClock overrides the time source for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FetchRecent returns the classified recent disclosures, serving from the
// TTL cache when fresh.
func (s *Service) FetchRecent(ctx context.Context) ([]models.Disclosure, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	since := s.now().AddDate(0, 0, -s.lookbackDays)
	raw, err := s.source.FetchFilings(ctx, since, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filings: %w", err)
	}

	disclosures := s.Process(raw)

	s.storeCache(ctx, disclosures)

	s.logger.Info().
		Int("fetched", len(raw)).
		Int("kept", len(disclosures)).
		Msg("Fetched recent disclosures")

	return disclosures, nil
}

// Process converts raw filings into disclosures: date parsing, recency
// filtering, title classification, and remark cleaning. Malformed filings
// are dropped individually; the batch never fails as a whole.
func (s *Service) Process(raw []models.RawFiling) []models.Disclosure {
	now := s.now()
	disclosures := make([]models.Disclosure, 0, len(raw))

	for _, filing := range raw {
		submitted, err := ParseSubmissionDate(filing.SubmittedRaw)
		if err != nil {
			s.logger.Debug().
				Str("filing_id", filing.ID).
				Str("raw_date", filing.SubmittedRaw).
				Err(err).
				Msg("Dropping filing with unparseable submission date")
			continue
		}

		if !WithinRecencyBound(submitted, now) {
			s.logger.Debug().
				Str("filing_id", filing.ID).
				Str("submitted", submitted.Format("2006-01-02")).
				Msg("Dropping filing outside recency bound")
			continue
		}

		disclosures = append(disclosures, models.Disclosure{
			ID:           filing.ID,
			SecurityCode: filing.SecurityCode,
			CompanyName:  filing.CompanyName,
			Title:        filing.Title,
			Category:     ClassifyTitle(filing.Title),
			SubmittedAt:  submitted,
			SourceURL:    filing.SourceURL,
			Summary:      CleanRemark(filing.Remark),
		})
	}

	return disclosures
}

func (s *Service) fromCache(ctx context.Context) ([]models.Disclosure, bool) {
	if s.kv == nil {
		return nil, false
	}

	fetchedAtRaw, err := s.kv.Get(ctx, cacheTimeKey)
	if err != nil {
		return nil, false
	}
	fetchedAt, err := time.Parse(time.RFC3339, fetchedAtRaw)
	if err != nil || s.now().Sub(fetchedAt) >= s.cacheTTL {
		return nil, false
	}

	payload, err := s.kv.Get(ctx, cacheKey)
	if err != nil {
		return nil, false
	}

	var cached []models.Disclosure
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode disclosure cache, refetching")
		return nil, false
	}

	s.logger.Debug().
		Int("count", len(cached)).
		Str("fetched_at", fetchedAtRaw).
		Msg("Serving disclosures from cache")

	return cached, true
}

func (s *Service) storeCache(ctx context.Context, disclosures []models.Disclosure) {
	if s.kv == nil {
		return
	}

	payload, err := json.Marshal(disclosures)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode disclosure cache")
		return
	}

	if err := s.kv.Set(ctx, cacheKey, string(payload), "recent disclosure batch"); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to store disclosure cache")
		return
	}
	if err := s.kv.Set(ctx, cacheTimeKey, s.now().Format(time.RFC3339), "disclosure batch fetch time"); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to store disclosure cache timestamp")
	}
}

// Refresh drops the cache timestamp so the next FetchRecent goes upstream.
func (s *Service) Refresh(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Delete(ctx, cacheTimeKey); err != nil && err != interfaces.ErrKeyNotFound {
		return fmt.Errorf("failed to invalidate disclosure cache: %w", err)
	}
	return nil
}
