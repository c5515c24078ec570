// Package catalog maintains the security master data: periodic sync from
// the exchange catalog feed, persistence, and the substring search that
// backs both the REST and realtime search surfaces.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the KRX listing feed.
	DefaultBaseURL = "https://data.krx.co.kr/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 2
)

// KRXProvider fetches the listed-security catalog from the KRX feed.
type KRXProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// KRXOption configures the KRXProvider.
type KRXOption func(*KRXProvider)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) KRXOption {
	return func(p *KRXProvider) {
		p.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) KRXOption {
	return func(p *KRXProvider) {
		p.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) KRXOption {
	return func(p *KRXProvider) {
		p.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) KRXOption {
	return func(p *KRXProvider) {
		p.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewKRXProvider creates a new KRX catalog provider.
func NewKRXProvider(opts ...KRXOption) *KRXProvider {
	p := &KRXProvider{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// listedSecurity is one row of the KRX listing feed.
type listedSecurity struct {
	Code      string `json:"short_code"`
	Name      string `json:"korean_name"`
	Market    string `json:"market_name"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
	MarketCap int64  `json:"market_cap"`
	Delisted  bool   `json:"delisted"`
}

type listedResponse struct {
	Securities []listedSecurity `json:"securities"`
}

// FetchSecurities retrieves the full listed-security catalog.
func (p *KRXProvider) FetchSecurities(ctx context.Context) ([]models.Security, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqURL := fmt.Sprintf("%s/listed.json", p.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug().
			Str("url", reqURL).
			Msg("KRX listing request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("KRX listing request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result listedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	now := time.Now()
	securities := make([]models.Security, 0, len(result.Securities))
	for _, row := range result.Securities {
		if row.Code == "" || row.Name == "" {
			continue
		}
		securities = append(securities, models.Security{
			Code:      row.Code,
			Name:      row.Name,
			Market:    models.ParseMarket(row.Market),
			Sector:    row.Sector,
			Industry:  row.Industry,
			MarketCap: row.MarketCap,
			Active:    !row.Delisted,
			SyncedAt:  now,
		})
	}

	return securities, nil
}

var _ interfaces.CatalogSource = (*KRXProvider)(nil)
