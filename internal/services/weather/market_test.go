package weather

import (
	"math"
	"testing"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

func record(name, sector string, condition models.Condition, confidence int) models.SecurityWeather {
	return models.SecurityWeather{
		Code:        name,
		CompanyName: name,
		Condition:   condition,
		Confidence:  confidence,
		Sector:      sector,
	}
}

func TestBuildMarketWeatherEmptyFallback(t *testing.T) {
	got := BuildMarketWeather(nil)

	if got.Condition != models.MarketCloudy {
		t.Errorf("condition = %q, want cloudy", got.Condition)
	}
	if got.Temperature != 65 || got.Humidity != 45 || got.WindSpeed != 55 || got.Pressure != 52 {
		t.Errorf("gauges = %d/%d/%d/%d, want 65/45/55/52",
			got.Temperature, got.Humidity, got.WindSpeed, got.Pressure)
	}
	if got.Trend != models.TrendStable {
		t.Errorf("trend = %q, want stable", got.Trend)
	}
	if got.Confidence != 60 {
		t.Errorf("confidence = %d, want 60", got.Confidence)
	}
}

func TestBuildMarketWeatherSunnyRequiresHighConfidence(t *testing.T) {
	// All positive, high confidence: sunny, trend up.
	high := []models.SecurityWeather{
		record("a", "화학", models.ConditionSunny, 90),
		record("b", "화학", models.ConditionSunny, 85),
		record("c", "화학", models.ConditionCloudy, 80),
	}
	got := BuildMarketWeather(high)
	if got.Condition != models.MarketSunny {
		t.Errorf("condition = %q, want sunny", got.Condition)
	}
	if got.Trend != models.TrendUp {
		t.Errorf("trend = %q, want up", got.Trend)
	}

	// Same ratio but low confidence: the sunny gate fails, cloudy wins.
	low := []models.SecurityWeather{
		record("a", "화학", models.ConditionSunny, 50),
		record("b", "화학", models.ConditionSunny, 50),
		record("c", "화학", models.ConditionCloudy, 50),
	}
	if got := BuildMarketWeather(low); got.Condition != models.MarketCloudy {
		t.Errorf("condition = %q, want cloudy", got.Condition)
	}
}

func TestBuildMarketWeatherGaugeInvariants(t *testing.T) {
	cases := [][]models.SecurityWeather{
		{record("a", "", models.ConditionSunny, 88)},
		{
			record("a", "", models.ConditionSunny, 88),
			record("b", "", models.ConditionDrizzle, 64),
			record("c", "", models.ConditionStormy, 28),
		},
		{
			record("a", "", models.ConditionCloudy, 70),
			record("b", "", models.ConditionRainy, 40),
		},
	}

	for i, records := range cases {
		got := BuildMarketWeather(records)
		if got.Temperature != got.WindSpeed {
			t.Errorf("case %d: temperature %d != windSpeed %d", i, got.Temperature, got.WindSpeed)
		}
		if diff := got.Humidity - (100 - got.Pressure); diff < -1 || diff > 1 {
			t.Errorf("case %d: humidity %d not within 1 of 100-pressure %d", i, got.Humidity, 100-got.Pressure)
		}
	}
}

func TestBuildMarketWeatherThreeSecurityScenario(t *testing.T) {
	// Scores 85, 55, 10 map to sunny, drizzle, stormy; only sunny is
	// positive, so positiveRatio = 1/3.
	records := []models.SecurityWeather{
		record("강한회사", "전기전자", MapCondition(85), 85*8/10+20),
		record("보통회사", "서비스업", MapCondition(55), 55*8/10+20),
		record("약한회사", "건설업", MapCondition(10), 10*8/10+20),
	}

	got := BuildMarketWeather(records)

	if got.Condition == models.MarketSunny || got.Condition == models.MarketCloudy {
		t.Fatalf("condition = %q, want rainy or stormy", got.Condition)
	}
	// 1/3 > 0.3 lands in the rainy band.
	if got.Condition != models.MarketRainy {
		t.Errorf("condition = %q, want rainy", got.Condition)
	}
	if got.Trend != models.TrendDown {
		t.Errorf("trend = %q, want down", got.Trend)
	}
	if got.Temperature != 33 {
		t.Errorf("temperature = %d, want 33", got.Temperature)
	}
	// avgConfidence = (88+64+28)/3 = 60.
	if got.Pressure != 60 || got.Confidence != 60 {
		t.Errorf("pressure/confidence = %d/%d, want 60/60", got.Pressure, got.Confidence)
	}
}

func TestBuildSectorWeather(t *testing.T) {
	records := []models.SecurityWeather{
		record("반도체1", "전기전자", models.ConditionSunny, 90),
		record("반도체2", "전기전자", models.ConditionCloudy, 80),
		record("반도체3", "전기전자", models.ConditionSunny, 85),
		record("건설1", "건설업", models.ConditionStormy, 30),
		record("건설2", "건설업", models.ConditionRainy, 40),
		record("무업종1", "", models.ConditionCloudy, 70),
		record("무업종2", "", models.ConditionDrizzle, 60),
	}

	got := BuildSectorWeather(records)
	if len(got) != 3 {
		t.Fatalf("got %d sectors, want 3", len(got))
	}

	// Sorted by averageChange descending.
	for i := 1; i < len(got); i++ {
		if got[i-1].AverageChange < got[i].AverageChange {
			t.Fatalf("sectors not sorted: %v before %v", got[i-1].AverageChange, got[i].AverageChange)
		}
	}

	top := got[0]
	if top.Sector != "전기전자" {
		t.Fatalf("top sector = %q, want 전기전자", top.Sector)
	}
	// positiveRatio 3/3 → sunny with no confidence gate at sector level.
	if top.Condition != models.MarketSunny {
		t.Errorf("전기전자 condition = %q, want sunny", top.Condition)
	}
	if math.Abs(top.AverageChange-50.0) > 1e-9 {
		t.Errorf("전기전자 averageChange = %v, want 50", top.AverageChange)
	}
	if top.SecurityCount != 3 {
		t.Errorf("전기전자 count = %d, want 3", top.SecurityCount)
	}
	wantTop := []string{"반도체1", "반도체3", "반도체2"}
	for i, name := range wantTop {
		if top.TopPerformers[i] != name {
			t.Errorf("topPerformers[%d] = %q, want %q", i, top.TopPerformers[i], name)
		}
	}
	// Bottom performers come lowest confidence first.
	if top.BottomPerformers[0] != "반도체2" {
		t.Errorf("bottomPerformers[0] = %q, want 반도체2", top.BottomPerformers[0])
	}

	// The empty sector lands in the 기타 bucket: 1/2 positive → change 0.
	middle := got[1]
	if middle.Sector != "기타" {
		t.Fatalf("middle sector = %q, want 기타", middle.Sector)
	}
	if middle.SecurityCount != 2 {
		t.Errorf("기타 count = %d, want 2", middle.SecurityCount)
	}
	if middle.AverageChange != 0 {
		t.Errorf("기타 averageChange = %v, want 0", middle.AverageChange)
	}

	// 건설업: 0/2 positive → stormy, averageChange -50.
	bottom := got[len(got)-1]
	if bottom.Sector != "건설업" || bottom.Condition != models.MarketStormy {
		t.Errorf("bottom sector = %q/%q, want 건설업/stormy", bottom.Sector, bottom.Condition)
	}
}
