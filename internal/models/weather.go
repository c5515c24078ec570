package models

import "time"

// Condition is the 7-value per-security weather vocabulary.
// The score mapper emits six of these; foggy is reserved for securities
// whose data quality prevents scoring and is kept for wire compatibility.
type Condition string

const (
	ConditionSunny   Condition = "sunny"
	ConditionCloudy  Condition = "cloudy"
	ConditionDrizzle Condition = "drizzle"
	ConditionRainy   Condition = "rainy"
	ConditionWindy   Condition = "windy"
	ConditionStormy  Condition = "stormy"
	ConditionFoggy   Condition = "foggy"
)

// MarketCondition is the reduced 4-value vocabulary used for market-wide
// and per-sector weather. Kept as a distinct type so the two vocabularies
// cannot be conflated; ReduceCondition is the only bridge.
type MarketCondition string

const (
	MarketSunny  MarketCondition = "sunny"
	MarketCloudy MarketCondition = "cloudy"
	MarketRainy  MarketCondition = "rainy"
	MarketStormy MarketCondition = "stormy"
)

// ReduceCondition maps a per-security condition into the market vocabulary.
func ReduceCondition(c Condition) MarketCondition {
	switch c {
	case ConditionSunny:
		return MarketSunny
	case ConditionCloudy, ConditionDrizzle:
		return MarketCloudy
	case ConditionRainy, ConditionWindy, ConditionFoggy:
		return MarketRainy
	default:
		return MarketStormy
	}
}

// IsPositive reports whether a condition counts toward the positive ratio.
// The positive set is exactly {sunny, cloudy}.
func (c Condition) IsPositive() bool {
	return c == ConditionSunny || c == ConditionCloudy
}

// Recommendation is the derived buy/hold/sell stance for a security.
type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendHold Recommendation = "hold"
	RecommendSell Recommendation = "sell"
)

// Trend is the market-wide directional indicator.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// SecurityWeather is the derived weather record for a single security.
// Ephemeral: recomputed on every analysis request, never persisted.
type SecurityWeather struct {
	Code           string         `json:"code"`
	CompanyName    string         `json:"company_name"`
	Condition      Condition      `json:"condition"`
	Forecast       string         `json:"forecast"`
	Confidence     int            `json:"confidence"` // 0-100
	Recommendation Recommendation `json:"recommendation"`
	MarketCap      int64          `json:"market_cap,omitempty"`
	Sector         string         `json:"sector,omitempty"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// MarketWeather is the derived market-wide weather record.
type MarketWeather struct {
	Condition   MarketCondition `json:"condition"`
	Temperature int             `json:"temperature"` // share of positive-condition securities, 0-100
	Humidity    int             `json:"humidity"`    // 100 - average confidence
	WindSpeed   int             `json:"wind_speed"`  // activity proxy, 0-100
	Pressure    int             `json:"pressure"`    // average confidence
	Trend       Trend           `json:"trend"`
	Confidence  int             `json:"confidence"` // 0-100
	Timestamp   time.Time       `json:"timestamp"`
}

// SectorWeather is the derived weather record for one sector bucket.
type SectorWeather struct {
	Sector           string          `json:"sector"`
	Condition        MarketCondition `json:"condition"`
	AverageChange    float64         `json:"average_change"` // synthetic percentage, not a price change
	SecurityCount    int             `json:"security_count"`
	TopPerformers    []string        `json:"top_performers"`    // up to 3 names, by confidence desc
	BottomPerformers []string        `json:"bottom_performers"` // up to 3 names, lowest confidence first
}

// MarketAnalysis is the full response of the analysis operation.
type MarketAnalysis struct {
	Market     MarketWeather     `json:"market"`
	Securities []SecurityWeather `json:"securities"`
	Sectors    []SectorWeather   `json:"sectors"`
	Insights   []string          `json:"insights"`
}
