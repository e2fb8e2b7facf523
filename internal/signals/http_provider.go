package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/provider/resilience"
)

// HTTPProviderName identifies the award-availability HTTP provider.
const HTTPProviderName = "award-api"

// HTTPProviderConfig holds configuration for the HTTP signal provider.
type HTTPProviderConfig struct {
	// BaseURL is the award availability API base URL (required).
	BaseURL string

	// APIKey authenticates against the API (required).
	APIKey string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for provider operations.
	Logger zerolog.Logger
}

// HTTPProvider fetches availability and cost signals from an external award
// API through the resilient client.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewHTTPProvider creates a new HTTP signal provider.
func NewHTTPProvider(cfg HTTPProviderConfig) *HTTPProvider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(HTTPProviderName))
	}

	return &HTTPProvider{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return HTTPProviderName
}

// availabilityResponse mirrors the award API wire format.
type availabilityResponse struct {
	Status  string  `json:"status"`
	Carrier string  `json:"carrier"`
	CostUSD float64 `json:"cost_usd"`
}

// Fetch resolves the signal for one directed pair and cabin.
func (p *HTTPProvider) Fetch(ctx context.Context, from, to, cabin string) (SegmentSignal, error) {
	url := fmt.Sprintf("%s/v1/availability?from=%s&to=%s&cabin=%s", p.baseURL, from, to, cabin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return SegmentSignal{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return SegmentSignal{}, fmt.Errorf("%w: %s", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return SegmentSignal{}, ErrNotFound
	default:
		return SegmentSignal{}, fmt.Errorf("%w: unexpected status code %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var body availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return SegmentSignal{}, fmt.Errorf("decoding response: %w", err)
	}

	return SegmentSignal{
		From:      from,
		To:        to,
		Carrier:   body.Carrier,
		Status:    parseStatus(body.Status),
		CostUSD:   body.CostUSD,
		CheckedAt: time.Now(),
	}, nil
}

// parseStatus maps wire statuses to AvailabilityStatus, defaulting unknown.
func parseStatus(s string) AvailabilityStatus {
	switch AvailabilityStatus(s) {
	case StatusAvailable, StatusLikely, StatusNotAvailable:
		return AvailabilityStatus(s)
	}
	return StatusUnknown
}
