package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stocklens/stocklens/internal/accounting"
	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/finnhub"
	"github.com/stocklens/stocklens/internal/service"
	"github.com/stocklens/stocklens/internal/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestGetSummary tests the full summary pipeline over seeded statement data.
//
// WHY: The summary is the product's main view; it chains FIFO aggregation,
// price resolution with fallback and account-level valuation, and a
// regression in any stage surfaces here.
func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("AAPL").At("2023-01-05, 10:31:02").Buy(10, 1306).Build(t, db)
	testutil.NewTrade("AAPL").At("2023-06-05, 14:02:10").Sell(5, 900).WithRealizedPL(246).Build(t, db)
	testutil.NewTrade("MSFT").At("2023-02-01, 09:45:00").Buy(4, 4042).Build(t, db)
	// Non-stock rows never reach the accounting pipeline.
	testutil.NewTrade("EUR.USD").At("2023-03-01, 11:00:00").Buy(1000, 1080).WithAssetCategory("Forex").Build(t, db)

	testutil.InsertDividend(t, db, "AAPL", 2.40)
	testutil.InsertDividend(t, db, "ZZZZ", 99) // no trades, dropped

	testutil.InsertOpenPosition(t, db, "AAPL", 185.2)
	testutil.InsertOpenPosition(t, db, "MSFT", 1011)
	testutil.InsertCashNAV(t, db, 250.25)

	stub := &testutil.StubQuoteFetcher{
		Quotes: map[string]finnhub.QuoteResponse{
			"AAPL": {Current: 190, Change: 2, ChangePercent: 1.06},
		},
	}
	svc := testutil.NewTestPortfolioService(t, db, stub)

	result, err := svc.GetSummary(context.Background(), service.SummaryOptions{})
	if err != nil {
		t.Fatalf("GetSummary() returned error: %v", err)
	}

	if len(result.Positions) != 2 {
		t.Fatalf("positions = %d, want 2 (forex and unknown dividend excluded)", len(result.Positions))
	}

	t.Run("live quote position", func(t *testing.T) {
		aapl := result.Positions[0]
		if aapl.Symbol != "AAPL" {
			t.Fatalf("first position = %q, want AAPL (symbol order)", aapl.Symbol)
		}
		if aapl.NetQuantity != 5 || aapl.RealizedPL != 246 {
			t.Errorf("netQuantity/realizedPL = %v/%v, want 5/246", aapl.NetQuantity, aapl.RealizedPL)
		}
		if !almostEqual(aapl.AvgBuyPrice, 130.6) {
			t.Errorf("avgBuyPrice = %v, want 130.6 (remaining lot basis)", aapl.AvgBuyPrice)
		}
		if aapl.CurrentPrice != 190 {
			t.Errorf("currentPrice = %v, want 190 (live quote)", aapl.CurrentPrice)
		}
		if !almostEqual(aapl.MarketValue, 950) {
			t.Errorf("marketValue = %v, want 950", aapl.MarketValue)
		}
		if !almostEqual(aapl.TotalGain, 246+297+2.40) {
			t.Errorf("totalGain = %v, want 545.4", aapl.TotalGain)
		}
		if !almostEqual(aapl.DailyChange, 10) {
			t.Errorf("dailyChange = %v, want 10", aapl.DailyChange)
		}
		if aapl.Status != accounting.StatusActive {
			t.Errorf("status = %q, want active", aapl.Status)
		}
	})

	t.Run("reported price fallback", func(t *testing.T) {
		msft := result.Positions[1]
		if msft.CurrentPrice != 1011 {
			t.Errorf("currentPrice = %v, want 1011 (statement close price)", msft.CurrentPrice)
		}
		if !almostEqual(msft.MarketValue, 4044) {
			t.Errorf("marketValue = %v, want 4044", msft.MarketValue)
		}
		if msft.DailyChange != 0 {
			t.Errorf("dailyChange = %v, want 0 without a live quote", msft.DailyChange)
		}
	})

	t.Run("account valuation", func(t *testing.T) {
		if !almostEqual(result.CashBalance, 250.25) {
			t.Errorf("cashBalance = %v, want 250.25", result.CashBalance)
		}
		if !almostEqual(result.TotalValue, 950+4044+250.25) {
			t.Errorf("totalValue = %v, want 5244.25", result.TotalValue)
		}
		if !almostEqual(result.Positions[0].PortfolioWeight, 950/5244.25) {
			t.Errorf("AAPL weight = %v, want %v", result.Positions[0].PortfolioWeight, 950/5244.25)
		}
	})

	t.Run("sort and status filter", func(t *testing.T) {
		sorted, err := svc.GetSummary(context.Background(), service.SummaryOptions{
			Sort: "marketValue",
			Desc: true,
		})
		if err != nil {
			t.Fatalf("GetSummary() returned error: %v", err)
		}
		if sorted.Positions[0].Symbol != "MSFT" {
			t.Errorf("first by marketValue desc = %q, want MSFT", sorted.Positions[0].Symbol)
		}

		active, err := svc.GetSummary(context.Background(), service.SummaryOptions{
			Status: accounting.StatusActive,
		})
		if err != nil {
			t.Fatalf("GetSummary() returned error: %v", err)
		}
		if len(active.Positions) != 2 {
			t.Errorf("active positions = %d, want 2", len(active.Positions))
		}
	})
}

// TestGetSummary_SplitAdjustment tests that splits recognized in corporate
// actions rescale earlier trades before aggregation.
func TestGetSummary_SplitAdjustment(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("XYZ").At("2020-01-10, 10:00:00").Buy(10, 900).Build(t, db)
	testutil.NewSplitAction("XYZ", "2020-08-28, 20:25:00",
		"XYZ(US0000000001) Split 3 for 1 (XYZ, XYZ CORP, US0000000001)").Build(t, db)

	svc := testutil.NewTestPortfolioService(t, db, nil)

	result, err := svc.GetSummary(context.Background(), service.SummaryOptions{})
	if err != nil {
		t.Fatalf("GetSummary() returned error: %v", err)
	}
	if len(result.Positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(result.Positions))
	}

	xyz := result.Positions[0]
	if xyz.NetQuantity != 30 {
		t.Errorf("netQuantity = %v, want 30 after 3-for-1 split", xyz.NetQuantity)
	}
	// Cost basis is unchanged by a split; only quantity and price rescale.
	if !almostEqual(xyz.AvgBuyPrice, 30) {
		t.Errorf("avgBuyPrice = %v, want 30", xyz.AvgBuyPrice)
	}
}

// TestGetSummary_Spinoff tests that spinoff actions materialize a zero-cost
// position in the spun-off symbol.
func TestGetSummary_Spinoff(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("PARENT").At("2021-03-01, 10:00:00").Buy(10, 1000).Build(t, db)
	testutil.NewSplitAction("PARENT", "2021-06-01, 20:25:00",
		"PARENT(US0000000002) Spinoff  1 for 2 (NEWCO, NEWCO INC, US0000000003)").
		WithQuantity(5).Build(t, db)

	svc := testutil.NewTestPortfolioService(t, db, nil)

	result, err := svc.GetSummary(context.Background(), service.SummaryOptions{})
	if err != nil {
		t.Fatalf("GetSummary() returned error: %v", err)
	}
	if len(result.Positions) != 2 {
		t.Fatalf("positions = %d, want 2 (parent plus spun-off symbol)", len(result.Positions))
	}

	newco := result.Positions[0]
	if newco.Symbol != "NEWCO" {
		t.Fatalf("first position = %q, want NEWCO", newco.Symbol)
	}
	if newco.NetQuantity != 5 {
		t.Errorf("netQuantity = %v, want 5", newco.NetQuantity)
	}
	if newco.BuySum != 0 || newco.AvgBuyPrice != 0 {
		t.Errorf("spinoff position must be zero-cost, got buySum=%v avgBuyPrice=%v", newco.BuySum, newco.AvgBuyPrice)
	}
}

// TestGetLots tests the per-symbol lot report including the price fallback.
func TestGetLots(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("AAPL").At("2023-01-05, 10:31:02").Buy(10, 1306).Build(t, db)
	testutil.NewTrade("AAPL").At("2023-06-05, 14:02:10").Sell(5, 900).Build(t, db)
	testutil.InsertOpenPosition(t, db, "AAPL", 185.2)

	svc := testutil.NewTestPortfolioService(t, db, nil)

	report, err := svc.GetLots(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetLots() returned error: %v", err)
	}

	if len(report.Open) != 1 || len(report.Sold) != 1 {
		t.Fatalf("open/sold lots = %d/%d, want 1/1", len(report.Open), len(report.Sold))
	}
	if report.OpenQuantity != 5 {
		t.Errorf("openQuantity = %v, want 5", report.OpenQuantity)
	}
	if !almostEqual(report.Open[0].UnitCost, 130.6) {
		t.Errorf("unitCost = %v, want 130.6", report.Open[0].UnitCost)
	}
	// No live quote: open lots are valued at the statement close price.
	if !almostEqual(report.Open[0].CurrentPrice, 185.2) {
		t.Errorf("currentPrice = %v, want 185.2 (reported fallback)", report.Open[0].CurrentPrice)
	}

	t.Run("unknown symbol", func(t *testing.T) {
		if _, err := svc.GetLots(context.Background(), "NOPE"); err != apperrors.ErrSymbolNotFound {
			t.Errorf("GetLots(NOPE) error = %v, want ErrSymbolNotFound", err)
		}
	})
}

// TestActiveSymbols tests that only net-long symbols drive quote fetching.
func TestActiveSymbols(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("AAPL").At("2023-01-05, 10:31:02").Buy(10, 1306).Build(t, db)
	testutil.NewTrade("GONE").At("2023-01-06, 10:00:00").Buy(5, 500).Build(t, db)
	testutil.NewTrade("GONE").At("2023-02-06, 10:00:00").Sell(5, 600).Build(t, db)

	svc := testutil.NewTestPortfolioService(t, db, nil)

	symbols, err := svc.ActiveSymbols()
	if err != nil {
		t.Fatalf("ActiveSymbols() returned error: %v", err)
	}
	if len(symbols) != 1 || symbols[0] != "AAPL" {
		t.Errorf("symbols = %v, want [AAPL]", symbols)
	}
}

// TestGetEvents tests classification of stored corporate actions.
func TestGetEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewSplitAction("AAPL", "2020-08-28, 20:25:00",
		"AAPL(US0378331005) Split 4 for 1 (AAPL, APPLE INC, US0378331005)").Build(t, db)
	testutil.NewSplitAction("PARENT", "2021-06-01, 20:25:00",
		"PARENT(US0000000002) Spinoff  1 for 2 (NEWCO, NEWCO INC, US0000000003)").
		WithQuantity(5).Build(t, db)

	svc := testutil.NewTestPortfolioService(t, db, nil)

	events, err := svc.GetEvents()
	if err != nil {
		t.Fatalf("GetEvents() returned error: %v", err)
	}
	if len(events.Actions) != 2 {
		t.Errorf("actions = %d, want 2", len(events.Actions))
	}
	if len(events.Splits) != 1 || events.Splits[0].Ratio != 4 {
		t.Errorf("splits = %+v, want one 4-for-1", events.Splits)
	}
	if len(events.Spinoffs) != 1 || events.Spinoffs[0].Symbol != "NEWCO" {
		t.Errorf("spinoffs = %+v, want one NEWCO trade", events.Spinoffs)
	}
}

// TestGetSummary_ShortPositionQuote tests that negative net positions still
// resolve a live quote instead of falling back to the reported close.
func TestGetSummary_ShortPositionQuote(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("SHRT").At("2023-01-05, 10:31:02").Sell(5, 400).Build(t, db)
	testutil.InsertOpenPosition(t, db, "SHRT", 70)

	stub := &testutil.StubQuoteFetcher{
		Quotes: map[string]finnhub.QuoteResponse{
			"SHRT": {Current: 75, Change: 2},
		},
	}
	svc := testutil.NewTestPortfolioService(t, db, stub)

	result, err := svc.GetSummary(context.Background(), service.SummaryOptions{})
	if err != nil {
		t.Fatalf("GetSummary() returned error: %v", err)
	}
	if len(result.Positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(result.Positions))
	}

	pos := result.Positions[0]
	if pos.Status != accounting.StatusAnomaly {
		t.Errorf("status = %q, want anomaly", pos.Status)
	}
	if pos.CurrentPrice != 75 {
		t.Errorf("currentPrice = %v, want 75 (live quote, not reported close)", pos.CurrentPrice)
	}
	if !almostEqual(pos.DailyChange, -10) {
		t.Errorf("dailyChange = %v, want -10", pos.DailyChange)
	}
	if len(stub.Calls) != 1 || stub.Calls[0][0] != "SHRT" {
		t.Errorf("fetch calls = %v, want [[SHRT]]", stub.Calls)
	}
}

// TestGetTrades_Adjusted tests that the trade stream is served split-adjusted
// with spinoff trades merged in.
func TestGetTrades_Adjusted(t *testing.T) {
	db := testutil.SetupTestDB(t)

	testutil.NewTrade("XYZ").At("2023-01-10, 10:00:00").Buy(10, 900).Build(t, db)
	testutil.NewSplitAction("XYZ", "2023-03-01, 20:25:00",
		"XYZ(US0000000001) Split 3 for 1 (XYZ, XYZ CORP, US0000000001)").Build(t, db)
	testutil.NewSplitAction("PARENT", "2023-04-01, 20:25:00",
		"PARENT(US0000000002) Spinoff  1 for 2 (NEWCO, NEWCO INC, US0000000003)").
		WithQuantity(5).Build(t, db)

	svc := testutil.NewTestPortfolioService(t, db, nil)

	trades, err := svc.GetTrades("")
	if err != nil {
		t.Fatalf("GetTrades() returned error: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("trades = %d, want 2 (stock trade plus spinoff)", len(trades))
	}

	filtered, err := svc.GetTrades("XYZ")
	if err != nil {
		t.Fatalf("GetTrades(XYZ) returned error: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("XYZ trades = %d, want 1", len(filtered))
	}
	if filtered[0].Quantity != 30 {
		t.Errorf("quantity = %v, want 30 after 3-for-1 split", filtered[0].Quantity)
	}
	if !almostEqual(filtered[0].TradePrice, 30) {
		t.Errorf("tradePrice = %v, want 30 after 3-for-1 split", filtered[0].TradePrice)
	}

	spinoff, err := svc.GetTrades("NEWCO")
	if err != nil {
		t.Fatalf("GetTrades(NEWCO) returned error: %v", err)
	}
	if len(spinoff) != 1 || spinoff[0].TradePrice != 0 || spinoff[0].Quantity != 5 {
		t.Errorf("NEWCO trades = %+v, want one zero-cost trade of 5", spinoff)
	}
}
