// Package pricing looks up material prices from supplier catalogs. It is
// deliberately outside the matching core: lookups are slow, cacheable
// network calls whose results get merged onto line items afterwards.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/voltfield/ohmwork/internal/common"
	"github.com/voltfield/ohmwork/internal/service"
)

// Config holds vendor catalog client settings.
type Config struct {
	BaseURL     string
	Vendor      string
	Timeout     time.Duration
	CacheTTL    time.Duration
	RequestsPer time.Duration
}

// DefaultConfig returns the default client settings: one request every two
// seconds, quotes cached for an hour.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://www.platt.com",
		Vendor:      "platt",
		Timeout:     15 * time.Second,
		CacheTTL:    time.Hour,
		RequestsPer: 2 * time.Second,
	}
}

// Client fetches price quotes from a supplier catalog search API. It
// rate-limits outbound requests and caches quotes by query, so repeated
// estimates over the same parts list hit the network once.
type Client struct {
	httpClient *http.Client
	quotes     *cache.Cache
	limiter    *rate.Limiter
	config     Config
}

// NewClient creates a catalog client.
func NewClient(config Config) *Client {
	def := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	if config.Vendor == "" {
		config.Vendor = def.Vendor
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = def.CacheTTL
	}
	if config.RequestsPer == 0 {
		config.RequestsPer = def.RequestsPer
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		quotes:     cache.New(config.CacheTTL, 2*config.CacheTTL),
		limiter:    rate.NewLimiter(rate.Every(config.RequestsPer), 1),
	}
}

// searchResponse is the vendor's catalog search payload. Price is absent
// for vendors that require a logged-in session to show pricing.
type searchResponse struct {
	Products []struct {
		Name   string   `json:"name"`
		ItemID string   `json:"itemId"`
		URL    string   `json:"url"`
		Price  *float64 `json:"price"`
		Stock  string   `json:"stockStatus"`
	} `json:"products"`
}

// Lookup implements service.PriceLookup. When catalogID is set it searches
// by exact item number, otherwise by description. A catalog hit without a
// price still returns a quote carrying the product name and URL so the
// line can link to the vendor page for manual pricing.
func (c *Client) Lookup(ctx context.Context, description, catalogID string) (*service.PriceQuote, error) {
	query := strings.TrimSpace(catalogID)
	if query == "" {
		query = strings.TrimSpace(description)
	}
	if query == "" {
		return nil, fmt.Errorf("empty price query")
	}

	key := c.config.Vendor + "::" + strings.ToLower(query)
	if cached, ok := c.quotes.Get(key); ok {
		quote := cached.(service.PriceQuote)
		return &quote, nil
	}

	var quote *service.PriceQuote
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		quote, fetchErr = c.fetch(ctx, query)
		return fetchErr
	}, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	})
	if err != nil {
		return nil, err
	}

	c.quotes.Set(key, *quote, cache.DefaultExpiration)
	return quote, nil
}

// fetch performs one rate-limited catalog search.
func (c *Client) fetch(ctx context.Context, query string) (*service.PriceQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search?q=%s", c.config.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("Failed to close vendor response body", "error", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, common.ErrVendorRateLimit
	case resp.StatusCode >= 500:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("vendor returned status %d", resp.StatusCode),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("vendor returned status %d", resp.StatusCode),
			Retryable: false,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("failed to parse vendor response: %w", err),
			Retryable: false,
		}
	}

	if len(parsed.Products) == 0 {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: no catalog results for %q", common.ErrPriceUnavailable, query),
			Retryable: false,
		}
	}

	quote := &service.PriceQuote{Vendor: c.config.Vendor}
	product := parsed.Products[0]
	quote.ProductName = product.Name
	quote.CatalogID = product.ItemID
	quote.Stock = product.Stock
	quote.URL = product.URL
	if !strings.HasPrefix(quote.URL, "http") && quote.URL != "" {
		quote.URL = c.config.BaseURL + quote.URL
	}
	if product.Price != nil && *product.Price > 0 {
		price := decimal.NewFromFloat(*product.Price).Round(2)
		quote.Price = &price
	}

	slog.Debug("Vendor lookup complete",
		"vendor", c.config.Vendor,
		"query", query,
		"found", quote.ProductName != "",
		"priced", quote.Price != nil)

	return quote, nil
}
