package weather

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// SecurityLister provides the catalog side of an analysis pass: all
// active securities sorted by market cap descending.
type SecurityLister interface {
	ListActive(ctx context.Context) ([]models.Security, error)
}

// DisclosureFetcher provides the recent classified disclosures.
type DisclosureFetcher interface {
	FetchRecent(ctx context.Context) ([]models.Disclosure, error)
}

// Service runs the market analysis pipeline.
type Service struct {
	catalog     SecurityLister
	disclosures DisclosureFetcher
	logger      arbor.ILogger
}

// NewService creates a weather service.
func NewService(catalog SecurityLister, disclosures DisclosureFetcher, logger arbor.ILogger) *Service {
	return &Service{
		catalog:     catalog,
		disclosures: disclosures,
		logger:      logger,
	}
}

// GenerateMarketAnalysis runs one full analysis pass: catalog + recent
// disclosures in, {market, securities, sectors, insights} out. Upstream
// failures degrade to the fixed fallback result; this operation never
// returns an error.
func (s *Service) GenerateMarketAnalysis(ctx context.Context) *models.MarketAnalysis {
	securities, err := s.catalog.ListActive(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Security catalog unavailable, serving fallback analysis")
		return fallbackAnalysis()
	}

	disclosures, err := s.disclosures.FetchRecent(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Disclosure source unavailable, serving fallback analysis")
		return fallbackAnalysis()
	}

	records := BuildSecurityWeather(securities, disclosures, s.logger)
	market := BuildMarketWeather(records)
	sectors := BuildSectorWeather(records)
	insights := BuildInsights(market, sectors, len(disclosures))

	s.logger.Debug().
		Int("securities", len(records)).
		Int("sectors", len(sectors)).
		Int("disclosures", len(disclosures)).
		Str("condition", string(market.Condition)).
		Msg("Market analysis generated")

	return &models.MarketAnalysis{
		Market:     market,
		Securities: records,
		Sectors:    sectors,
		Insights:   insights,
	}
}

func fallbackAnalysis() *models.MarketAnalysis {
	return &models.MarketAnalysis{
		Market:     FallbackMarketWeather(),
		Securities: []models.SecurityWeather{},
		Sectors:    []models.SectorWeather{},
		Insights:   FallbackInsights(),
	}
}
