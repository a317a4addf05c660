package service

import (
	"context"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/stocklens/stocklens/internal/accounting"
	"github.com/stocklens/stocklens/internal/finnhub"
)

// QuoteFetcher is the market data dependency of QuoteService, implemented
// by finnhub.Client and mocked in tests.
type QuoteFetcher interface {
	GetQuotes(ctx context.Context, symbols []string) (map[string]finnhub.QuoteResponse, error)
	SetToken(token string)
}

// QuoteService resolves live quotes for the portfolio, caching results so
// repeated summary requests inside the TTL do not re-hit the Finnhub API.
// Prices pushed from the realtime trade stream overwrite cached quotes
// between refreshes.
type QuoteService struct {
	client QuoteFetcher
	cache  *cache.Cache
}

// NewQuoteService creates a new QuoteService with the given cache TTL.
func NewQuoteService(client QuoteFetcher, ttl time.Duration) *QuoteService {
	return &QuoteService{
		client: client,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// SetToken replaces the API token on the underlying client, used when a new
// token is stored through the settings API.
func (s *QuoteService) SetToken(token string) {
	s.client.SetToken(token)
}

// GetQuotes returns quotes for the given symbols, serving from cache where
// possible and fetching the rest in one rate-limited batch. Symbols that
// cannot be resolved are absent from the result; callers fall back to
// statement-reported prices.
func (s *QuoteService) GetQuotes(ctx context.Context, symbols []string) map[string]accounting.Quote {
	quotes := make(map[string]accounting.Quote, len(symbols))
	var missing []string

	for _, symbol := range symbols {
		if cached, ok := s.cache.Get(symbol); ok {
			quotes[symbol] = cached.(accounting.Quote)
			continue
		}
		missing = append(missing, symbol)
	}

	if len(missing) == 0 {
		return quotes
	}

	fetched, err := s.client.GetQuotes(ctx, missing)
	if err != nil {
		// Partial results still enrich the summary; the rest fall back.
		log.Printf("quote fetch: %v", err)
	}

	for symbol, raw := range fetched {
		quote := accounting.Quote{
			Price:         raw.Current,
			Change:        raw.Change,
			ChangePercent: raw.ChangePercent,
		}
		s.cache.SetDefault(symbol, quote)
		quotes[symbol] = quote
	}

	return quotes
}

// Refresh drops any cached quotes for the given symbols and fetches fresh
// ones. Used by the scheduled cache warm-up.
func (s *QuoteService) Refresh(ctx context.Context, symbols []string) {
	for _, symbol := range symbols {
		s.cache.Delete(symbol)
	}
	s.GetQuotes(ctx, symbols)
}

// ApplyTradePrice folds a streamed trade price into the cached quote for a
// symbol. Daily change figures keep their last REST-fetched values; only the
// price moves with the stream.
func (s *QuoteService) ApplyTradePrice(symbol string, price float64) {
	quote := accounting.Quote{Price: price}
	if cached, ok := s.cache.Get(symbol); ok {
		quote = cached.(accounting.Quote)
		quote.Price = price
	}
	s.cache.SetDefault(symbol, quote)
}
