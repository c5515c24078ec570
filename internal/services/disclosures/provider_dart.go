package disclosures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the DART open API.
	DefaultBaseURL = "https://opendart.fss.or.kr/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// viewerURLFormat builds a human-readable filing URL from its id.
	viewerURLFormat = "https://dart.fss.or.kr/dsaf001/main.do?rcpNo=%s"
)

// DARTProvider fetches raw filings from the DART open API.
type DARTProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// DARTOption configures the DARTProvider.
type DARTOption func(*DARTProvider)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) DARTOption {
	return func(p *DARTProvider) {
		p.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) DARTOption {
	return func(p *DARTProvider) {
		p.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) DARTOption {
	return func(p *DARTProvider) {
		p.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) DARTOption {
	return func(p *DARTProvider) {
		p.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewDARTProvider creates a new DART API provider.
func NewDARTProvider(apiKey string, opts ...DARTOption) *DARTProvider {
	p := &DARTProvider{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
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

// listResponse is the DART /list envelope.
type listResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	List    []models.RawFiling `json:"list"`
}

// FetchFilings retrieves filings submitted since the given time.
func (p *DARTProvider) FetchFilings(ctx context.Context, since time.Time, pageSize int) ([]models.RawFiling, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	if pageSize <= 0 {
		pageSize = 100
	}

	params := url.Values{}
	params.Set("crtfc_key", p.apiKey)
	params.Set("bgn_de", since.Format("20060102"))
	params.Set("page_count", fmt.Sprintf("%d", pageSize))

	reqURL := fmt.Sprintf("%s/list.json?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug().
			Str("url", p.baseURL+"/list.json").
			Str("since", since.Format("20060102")).
			Int("page_size", pageSize).
			Msg("DART filing list request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("DART list request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// "000" is DART's success status; "013" means no matching filings.
	if result.Status != "000" && result.Status != "013" {
		return nil, fmt.Errorf("DART list returned status %s: %s", result.Status, result.Message)
	}

	for i := range result.List {
		if result.List[i].SourceURL == "" && result.List[i].ID != "" {
			result.List[i].SourceURL = fmt.Sprintf(viewerURLFormat, result.List[i].ID)
		}
	}

	return result.List, nil
}

var _ interfaces.DisclosureSource = (*DARTProvider)(nil)
