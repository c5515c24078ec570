package weather

import (
	"math"
	"sort"
	"time"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// fallbackSector is the bucket for securities without a sector label.
const fallbackSector = "기타"

// FallbackMarketWeather is returned when no per-security records exist,
// typically while upstream data is still loading. Fixed values rather
// than a computation over zero records.
func FallbackMarketWeather() models.MarketWeather {
	return models.MarketWeather{
		Condition:   models.MarketCloudy,
		Temperature: 65,
		Humidity:    45,
		WindSpeed:   55,
		Pressure:    52,
		Trend:       models.TrendStable,
		Confidence:  60,
		Timestamp:   time.Now(),
	}
}

// BuildMarketWeather reduces per-security records into the market-wide
// record. Empty input returns the fixed fallback.
func BuildMarketWeather(records []models.SecurityWeather) models.MarketWeather {
	if len(records) == 0 {
		return FallbackMarketWeather()
	}

	positiveRatio, avgConfidence := summarize(records)

	var condition models.MarketCondition
	switch {
	case positiveRatio > 0.7 && avgConfidence > 70:
		condition = models.MarketSunny
	case positiveRatio > 0.5:
		condition = models.MarketCloudy
	case positiveRatio > 0.3:
		condition = models.MarketRainy
	default:
		condition = models.MarketStormy
	}

	var trend models.Trend
	switch {
	case positiveRatio > 0.6:
		trend = models.TrendUp
	case positiveRatio < 0.4:
		trend = models.TrendDown
	default:
		trend = models.TrendStable
	}

	temperature := int(math.Round(positiveRatio * 100))

	return models.MarketWeather{
		Condition:   condition,
		Temperature: temperature,
		Humidity:    int(math.Round(100 - avgConfidence)),
		// windSpeed reuses the positive ratio as an activity proxy. The
		// duplication with temperature looks like a copy slip in the
		// original logic; kept because clients read both gauges.
		WindSpeed:  temperature,
		Pressure:   int(math.Round(avgConfidence)),
		Trend:      trend,
		Confidence: int(math.Round(avgConfidence)),
		Timestamp:  time.Now(),
	}
}

// BuildSectorWeather groups per-security records by sector and reduces
// each group. The returned list is sorted by averageChange descending.
func BuildSectorWeather(records []models.SecurityWeather) []models.SectorWeather {
	groups := make(map[string][]models.SecurityWeather)
	for _, r := range records {
		sector := r.Sector
		if sector == "" {
			sector = fallbackSector
		}
		groups[sector] = append(groups[sector], r)
	}

	sectors := make([]models.SectorWeather, 0, len(groups))
	for sector, group := range groups {
		positiveRatio, _ := summarize(group)

		// Sector condition has no confidence gate on sunny, unlike the
		// market-level rule. The asymmetry is intentional.
		var condition models.MarketCondition
		switch {
		case positiveRatio > 0.7:
			condition = models.MarketSunny
		case positiveRatio > 0.5:
			condition = models.MarketCloudy
		case positiveRatio > 0.3:
			condition = models.MarketRainy
		default:
			condition = models.MarketStormy
		}

		ranked := make([]models.SecurityWeather, len(group))
		copy(ranked, group)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Confidence > ranked[j].Confidence
		})

		sectors = append(sectors, models.SectorWeather{
			Sector:    sector,
			Condition: condition,
			// Synthetic percentage derived from the positive ratio, not
			// a real price change.
			AverageChange:    math.Round((positiveRatio-0.5)*100*100) / 100,
			SecurityCount:    len(group),
			TopPerformers:    topNames(ranked, 3),
			BottomPerformers: bottomNames(ranked, 3),
		})
	}

	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].AverageChange > sectors[j].AverageChange
	})

	return sectors
}

// summarize computes the positive-condition ratio and mean confidence.
func summarize(records []models.SecurityWeather) (positiveRatio, avgConfidence float64) {
	if len(records) == 0 {
		return 0, 0
	}

	positive := 0
	confidenceSum := 0
	for _, r := range records {
		if r.Condition.IsPositive() {
			positive++
		}
		confidenceSum += r.Confidence
	}

	positiveRatio = float64(positive) / float64(len(records))
	avgConfidence = float64(confidenceSum) / float64(len(records))
	return positiveRatio, avgConfidence
}

// topNames returns up to n names from the head of a ranked list.
func topNames(ranked []models.SecurityWeather, n int) []string {
	if n > len(ranked) {
		n = len(ranked)
	}
	names := make([]string, 0, n)
	for _, r := range ranked[:n] {
		names = append(names, r.CompanyName)
	}
	return names
}

// bottomNames returns up to n names from the tail of a ranked list,
// lowest confidence first.
func bottomNames(ranked []models.SecurityWeather, n int) []string {
	if n > len(ranked) {
		n = len(ranked)
	}
	names := make([]string, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		names = append(names, ranked[i].CompanyName)
	}
	return names
}
