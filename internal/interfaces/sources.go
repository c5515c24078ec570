package interfaces

import (
	"context"
	"time"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// CatalogSource returns the full security master list from an upstream
// exchange feed. Implementations own their transport and timeouts.
type CatalogSource interface {
	// FetchSecurities returns all listed securities known to the source.
	FetchSecurities(ctx context.Context) ([]models.Security, error)
}

// DisclosureSource returns raw regulatory filings from an upstream feed.
// The disclosure service is responsible for date parsing, recency
// filtering, classification, and remark cleaning.
type DisclosureSource interface {
	// FetchFilings returns filings submitted since the given time,
	// up to pageSize records.
	FetchFilings(ctx context.Context, since time.Time, pageSize int) ([]models.RawFiling, error)
}
