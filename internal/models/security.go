package models

import "time"

// Market identifies the exchange a security is listed on.
type Market string

const (
	// MarketKOSPI is the primary exchange.
	MarketKOSPI Market = "KOSPI"

	// MarketKOSDAQ is the secondary exchange.
	MarketKOSDAQ Market = "KOSDAQ"

	// MarketOther covers KONEX and unclassified listings.
	MarketOther Market = "OTHER"
)

// Security is a master reference record for a listed security.
// Records are created and updated by the periodic catalog sync;
// the analysis pipeline treats them as read-only.
type Security struct {
	Code      string    `json:"code" badgerhold:"key"`
	Name      string    `json:"name"`
	Market    Market    `json:"market"`
	Sector    string    `json:"sector,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	MarketCap int64     `json:"market_cap,omitempty"` // KRW; 0 when unknown
	Active    bool      `json:"active"`
	SyncedAt  time.Time `json:"synced_at"`
}

// ParseMarket normalizes a free-text market label from the catalog feed.
func ParseMarket(s string) Market {
	switch s {
	case "KOSPI", "kospi", "유가증권", "유가증권시장":
		return MarketKOSPI
	case "KOSDAQ", "kosdaq", "코스닥", "코스닥시장":
		return MarketKOSDAQ
	default:
		return MarketOther
	}
}
