package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stocklens/stocklens/internal/model"
	"github.com/stocklens/stocklens/internal/testutil"
)

func TestTradeHandler_Trades(t *testing.T) {
	setupHandler := func(t *testing.T) *TradeHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		testutil.NewTrade("XYZ").At("2023-01-10, 10:00:00").Buy(10, 900).Build(t, db)
		testutil.NewSplitAction("XYZ", "2023-03-01, 20:25:00",
			"XYZ(US0000000001) Split 3 for 1 (XYZ, XYZ CORP, US0000000001)").Build(t, db)
		return NewTradeHandler(testutil.NewTestPortfolioService(t, db, nil))
	}

	t.Run("serves the split-adjusted stream", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var trades []model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&trades)

		if len(trades) != 1 {
			t.Fatalf("Expected 1 trade, got %d", len(trades))
		}
		if trades[0].Quantity != 30 {
			t.Errorf("Expected quantity 30 after 3-for-1 split, got %v", trades[0].Quantity)
		}
		if trades[0].TradePrice != 30 {
			t.Errorf("Expected trade price 30 after 3-for-1 split, got %v", trades[0].TradePrice)
		}
	})

	t.Run("filters by path symbol", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/trades/XYZ",
			map[string]string{"symbol": "XYZ"})
		w := httptest.NewRecorder()

		handler.TradesBySymbol(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var trades []model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&trades)

		if len(trades) != 1 || trades[0].Symbol != "XYZ" {
			t.Errorf("Expected single XYZ trade, got %+v", trades)
		}
	})

	t.Run("rejects malformed symbol", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/trades/xyz!",
			map[string]string{"symbol": "xyz!"})
		w := httptest.NewRecorder()

		handler.TradesBySymbol(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_Dividends(t *testing.T) {
	t.Run("filters by query symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.NewTrade("AAPL").At("2023-01-05, 10:31:02").Buy(10, 1306).Build(t, db)
		testutil.InsertDividend(t, db, "AAPL", 2.40)
		testutil.InsertDividend(t, db, "MSFT", 1.10)
		handler := NewTradeHandler(testutil.NewTestPortfolioService(t, db, nil))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dividends",
			map[string]string{"symbol": "AAPL"})
		w := httptest.NewRecorder()

		handler.Dividends(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var dividends []model.Dividend
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&dividends)

		if len(dividends) != 1 || dividends[0].Symbol != "AAPL" {
			t.Errorf("Expected single AAPL dividend, got %+v", dividends)
		}
	})
}
