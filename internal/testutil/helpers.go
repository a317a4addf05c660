package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/repository"
	"github.com/stocklens/stocklens/internal/service"
)

// NewTestPortfolioService wires a PortfolioService against the test
// database. Quote lookups go through the given stub, keeping tests
// deterministic and offline; a nil stub resolves no quotes, so summaries
// fall back to statement-reported prices.
func NewTestPortfolioService(t *testing.T, db *sql.DB, stub *StubQuoteFetcher) *service.PortfolioService {
	t.Helper()

	if stub == nil {
		stub = &StubQuoteFetcher{}
	}
	quoteService := service.NewQuoteService(stub, time.Minute)

	return service.NewPortfolioService(
		repository.NewTradeRepository(db),
		repository.NewCorporateActionRepository(db),
		repository.NewDividendRepository(db),
		repository.NewPositionRepository(db),
		repository.NewNAVRepository(db),
		quoteService,
	)
}

// NewTestStatementService wires a StatementService against the test database.
func NewTestStatementService(t *testing.T, db *sql.DB) *service.StatementService {
	t.Helper()

	return service.NewStatementService(
		db,
		repository.NewTradeRepository(db),
		repository.NewCorporateActionRepository(db),
		repository.NewDividendRepository(db),
		repository.NewPositionRepository(db),
		repository.NewNAVRepository(db),
	)
}

// NewTestSettingsService wires a SettingsService with no encryption key and
// no environment fallback token.
func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	s, err := service.NewSettingsService(repository.NewSettingRepository(db), "", "")
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return s
}

// NewTestSystemService wires a SystemService against the test database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}
