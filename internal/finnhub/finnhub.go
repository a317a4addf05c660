// Package finnhub provides a client for the Finnhub market data API:
// REST quote lookups and the realtime trade websocket.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// The free tier allows 60 REST calls per minute.
const requestsPerMinute = 60

// Client provides methods for fetching market data from the Finnhub API.
// All requests share one rate limiter so that batch fetches stay inside the
// free-tier quota.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Finnhub client with default HTTP settings.
func NewClient(token string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), requestsPerMinute),
	}
}

// SetToken replaces the API token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetQuote fetches the current quote for a symbol.
//
// Finnhub returns an all-zero body, not an error status, for unknown
// symbols; callers treat a zero Current price as unresolved.
func (c *Client) GetQuote(ctx context.Context, symbol string) (QuoteResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return QuoteResponse{}, err
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return QuoteResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return QuoteResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return QuoteResponse{}, fmt.Errorf("finnhub quote %s: status %d", symbol, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return QuoteResponse{}, err
	}

	var quote QuoteResponse
	if err := json.Unmarshal(data, &quote); err != nil {
		return QuoteResponse{}, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	return quote, nil
}

// GetQuotes fetches quotes for a batch of symbols concurrently, bounded by
// the shared rate limiter. Symbols that fail to resolve are left out of the
// result rather than failing the batch; the first transport-level error is
// returned alongside whatever resolved.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (map[string]QuoteResponse, error) {
	quotes := make(map[string]QuoteResponse, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			quote, err := c.GetQuote(ctx, symbol)
			if err != nil {
				return err
			}
			if quote.Current == 0 {
				return nil
			}

			mu.Lock()
			quotes[symbol] = quote
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return quotes, err
}
