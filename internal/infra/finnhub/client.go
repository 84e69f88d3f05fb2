package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"options-quiz-service/internal/domain"
)

const (
	DefaultBaseURL           = "https://finnhub.io/api/v1"
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 5
	DefaultTimeout           = 10 * time.Second
)

type HTTPConfig struct {
	BaseURL        string
	APIKey         string
	RateLimiter    *rate.Limiter
	RequestTimeout time.Duration
}

// DefaultHTTPConfig stays under the free tier's 60 calls per minute.
func DefaultHTTPConfig(apiKey string) *HTTPConfig {
	return &HTTPConfig{
		BaseURL:        DefaultBaseURL,
		APIKey:         apiKey,
		RateLimiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
		RequestTimeout: DefaultTimeout,
	}
}

// Client reads quotes and company profiles from the market data API. It
// implements app.QuoteSource and memory.ProfileLoader.
type Client struct {
	config *HTTPConfig
	http   *http.Client
}

func NewClient(config *HTTPConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultTimeout
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.RequestTimeout},
	}
}

// Quote returns domain.ErrNoQuoteData when the provider answers with a zero
// current price, which is how it reports unknown symbols.
func (c *Client) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	var q domain.Quote
	if err := c.get(ctx, "/quote", symbol, &q); err != nil {
		return domain.Quote{}, err
	}
	if q.Current <= 0 {
		return domain.Quote{}, fmt.Errorf("%w: %s", domain.ErrNoQuoteData, symbol)
	}
	q.Symbol = strings.ToUpper(symbol)
	return q, nil
}

// LoadProfile returns domain.ErrNoProfileData for an empty profile object.
func (c *Client) LoadProfile(ctx context.Context, symbol string) (domain.CompanyProfile, error) {
	var p domain.CompanyProfile
	if err := c.get(ctx, "/stock/profile2", symbol, &p); err != nil {
		return domain.CompanyProfile{}, err
	}
	if p.Name == "" {
		return domain.CompanyProfile{}, fmt.Errorf("%w: %s", domain.ErrNoProfileData, symbol)
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, path, symbol string, out any) error {
	if c.config.RateLimiter != nil {
		if err := c.config.RateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol))
	q.Set("token", c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", domain.ErrUpstream, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrUpstream, path, err)
	}
	return nil
}
