package weather

import (
	"strings"
	"testing"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

func TestBuildInsightsNeverExceedsFour(t *testing.T) {
	// Every check qualifies: stormy market, both sector statements, heavy
	// disclosure volume, high humidity.
	market := models.MarketWeather{
		Condition: models.MarketStormy,
		Humidity:  90,
		WindSpeed: 10,
	}
	sectors := []models.SectorWeather{
		{Sector: "전기전자", AverageChange: 10},
		{Sector: "건설업", AverageChange: -30},
	}

	got := BuildInsights(market, sectors, 25)
	if len(got) > MaxInsights {
		t.Fatalf("got %d insights, want at most %d", len(got), MaxInsights)
	}
	if len(got) != 4 {
		t.Fatalf("got %d insights, want exactly 4 when five checks qualify", len(got))
	}
}

func TestBuildInsightsSunnyReferencesWindSpeed(t *testing.T) {
	market := models.MarketWeather{
		Condition: models.MarketSunny,
		WindSpeed: 72,
		Humidity:  28,
	}

	got := BuildInsights(market, nil, 0)
	if len(got) != 1 {
		t.Fatalf("got %d insights, want 1", len(got))
	}
	if !strings.Contains(got[0], "72%") {
		t.Errorf("insight %q should cite the windSpeed gauge", got[0])
	}
}

func TestBuildInsightsQuietMarket(t *testing.T) {
	// Cloudy market, one mildly positive sector, low volume: only the
	// top-sector statement qualifies.
	market := models.MarketWeather{
		Condition: models.MarketCloudy,
		Humidity:  40,
	}
	sectors := []models.SectorWeather{
		{Sector: "서비스업", AverageChange: 5},
	}

	got := BuildInsights(market, sectors, 3)
	if len(got) != 1 {
		t.Fatalf("got %d insights, want 1: %v", len(got), got)
	}
	if !strings.Contains(got[0], "서비스업") {
		t.Errorf("insight %q should name the top sector", got[0])
	}
}

func TestBuildInsightsBottomSectorThreshold(t *testing.T) {
	market := models.MarketWeather{Condition: models.MarketCloudy}

	// Bottom sector at exactly -1 does not trigger the caution.
	atBoundary := []models.SectorWeather{
		{Sector: "화학", AverageChange: 3},
		{Sector: "운수장비", AverageChange: -1},
	}
	if got := BuildInsights(market, atBoundary, 0); len(got) != 1 {
		t.Fatalf("boundary: got %d insights, want 1: %v", len(got), got)
	}

	below := []models.SectorWeather{
		{Sector: "화학", AverageChange: 3},
		{Sector: "운수장비", AverageChange: -1.5},
	}
	got := BuildInsights(market, below, 0)
	if len(got) != 2 {
		t.Fatalf("below boundary: got %d insights, want 2: %v", len(got), got)
	}
	if !strings.Contains(got[1], "운수장비") {
		t.Errorf("insight %q should name the weak sector", got[1])
	}
}

func TestBuildInsightsEmptyInputs(t *testing.T) {
	got := BuildInsights(models.MarketWeather{Condition: models.MarketCloudy}, nil, 0)
	if len(got) != 0 {
		t.Fatalf("got %d insights, want 0", len(got))
	}
}

func TestFallbackInsightsCopied(t *testing.T) {
	a := FallbackInsights()
	a[0] = "changed"
	if b := FallbackInsights(); b[0] == "changed" {
		t.Fatal("FallbackInsights must return a fresh copy")
	}
}
