package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

type stubLister struct {
	securities []models.Security
	err        error
}

func (s *stubLister) ListActive(ctx context.Context) ([]models.Security, error) {
	return s.securities, s.err
}

type stubFetcher struct {
	disclosures []models.Disclosure
	err         error
}

func (s *stubFetcher) FetchRecent(ctx context.Context) ([]models.Disclosure, error) {
	return s.disclosures, s.err
}

func TestGenerateMarketAnalysis(t *testing.T) {
	catalog := &stubLister{securities: []models.Security{
		{Code: "005930", Name: "삼성전자", Sector: "전기전자", Market: models.MarketKOSPI, MarketCap: 400, Active: true},
		{Code: "000660", Name: "SK하이닉스", Sector: "전기전자", Market: models.MarketKOSPI, MarketCap: 120, Active: true},
		{Code: "035720", Name: "카카오", Sector: "서비스업", Market: models.MarketKOSPI, MarketCap: 20, Active: true},
	}}
	disclosures := &stubFetcher{disclosures: []models.Disclosure{
		{ID: "d1", SecurityCode: "005930", CompanyName: "삼성전자", Title: "분기보고서", Category: models.CategoryQuarterly},
	}}

	svc := NewService(catalog, disclosures, common.GetLogger())
	got := svc.GenerateMarketAnalysis(context.Background())

	require.NotNil(t, got)
	require.Len(t, got.Securities, 3, "all securities, not capped")
	assert.Equal(t, "005930", got.Securities[0].Code, "catalog order preserved")

	assert.Equal(t, got.Market.Temperature, got.Market.WindSpeed)
	assert.InDelta(t, 100-got.Market.Pressure, got.Market.Humidity, 1)

	require.NotEmpty(t, got.Sectors)
	for i := 1; i < len(got.Sectors); i++ {
		assert.GreaterOrEqual(t, got.Sectors[i-1].AverageChange, got.Sectors[i].AverageChange)
	}

	assert.LessOrEqual(t, len(got.Insights), MaxInsights)
}

func TestGenerateMarketAnalysisCatalogDown(t *testing.T) {
	svc := NewService(
		&stubLister{err: errors.New("catalog unreachable")},
		&stubFetcher{},
		common.GetLogger(),
	)

	got := svc.GenerateMarketAnalysis(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, models.MarketCloudy, got.Market.Condition)
	assert.Equal(t, 65, got.Market.Temperature)
	assert.Equal(t, 45, got.Market.Humidity)
	assert.Equal(t, 55, got.Market.WindSpeed)
	assert.Equal(t, 52, got.Market.Pressure)
	assert.Equal(t, 60, got.Market.Confidence)
	assert.Empty(t, got.Securities)
	assert.Empty(t, got.Sectors)
	assert.Equal(t, FallbackInsights(), got.Insights)
}

func TestGenerateMarketAnalysisDisclosuresDown(t *testing.T) {
	svc := NewService(
		&stubLister{securities: []models.Security{
			{Code: "005930", Name: "삼성전자", Active: true},
		}},
		&stubFetcher{err: errors.New("disclosure feed unreachable")},
		common.GetLogger(),
	)

	got := svc.GenerateMarketAnalysis(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, FallbackInsights(), got.Insights)
	assert.Empty(t, got.Securities)
}

func TestGenerateMarketAnalysisEmptyCatalog(t *testing.T) {
	svc := NewService(&stubLister{}, &stubFetcher{}, common.GetLogger())

	got := svc.GenerateMarketAnalysis(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, models.MarketCloudy, got.Market.Condition)
	assert.Empty(t, got.Securities)
}
