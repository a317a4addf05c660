package testutil

import (
	"context"

	"github.com/stocklens/stocklens/internal/finnhub"
)

// StubQuoteFetcher is an in-memory service.QuoteFetcher. Quotes are keyed by
// symbol; symbols without an entry resolve nothing, exercising the reported
// price fallback.
type StubQuoteFetcher struct {
	Quotes map[string]finnhub.QuoteResponse
	// Calls records the symbols of every GetQuotes invocation.
	Calls [][]string
	// Token records the last SetToken value.
	Token string
}

// GetQuotes returns the configured quotes for the requested symbols.
func (s *StubQuoteFetcher) GetQuotes(ctx context.Context, symbols []string) (map[string]finnhub.QuoteResponse, error) {
	s.Calls = append(s.Calls, symbols)

	result := make(map[string]finnhub.QuoteResponse)
	for _, symbol := range symbols {
		if quote, ok := s.Quotes[symbol]; ok {
			result[symbol] = quote
		}
	}
	return result, nil
}

// SetToken records the token for assertions.
func (s *StubQuoteFetcher) SetToken(token string) {
	s.Token = token
}
