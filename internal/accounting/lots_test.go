package accounting

import (
	"math"
	"testing"

	"github.com/stocklens/stocklens/internal/model"
)

func buy(symbol, dateTime string, quantity, basis float64) model.Trade {
	return model.Trade{
		Header:        "Data",
		AssetCategory: "Stocks",
		Symbol:        symbol,
		DateTime:      dateTime,
		Quantity:      quantity,
		Basis:         -basis, // statements report buy basis negative-signed
	}
}

func sell(symbol, dateTime string, quantity, proceeds, fee float64) model.Trade {
	return model.Trade{
		Header:        "Data",
		AssetCategory: "Stocks",
		Symbol:        symbol,
		DateTime:      dateTime,
		Quantity:      -quantity,
		Proceeds:      proceeds,
		CommFee:       -fee,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestTrackLots_FIFOOrder tests that sells consume the oldest lot first.
//
// WHY: FIFO is the one cost-basis method this engine implements. The
// canonical case: lots at $100 then $200, selling 15 must exhaust the $100
// lot and take 5 from the $200 lot, leaving 5 @ $200.
func TestTrackLots_FIFOOrder(t *testing.T) {
	trades := []model.Trade{
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1000), // 10 @ $100
		buy("XYZ", "2023-02-02, 10:00:00", 10, 2000), // 10 @ $200
		sell("XYZ", "2023-03-02, 10:00:00", 15, 3750, 0),
	}

	report := TrackLots(trades, nil)

	if len(report.Open) != 1 {
		t.Fatalf("open lots = %d, want 1", len(report.Open))
	}
	open := report.Open[0]
	if open.Quantity != 5 {
		t.Errorf("open quantity = %v, want 5", open.Quantity)
	}
	if !almostEqual(open.UnitCost, 200) {
		t.Errorf("open unitCost = %v, want 200", open.UnitCost)
	}
	if !almostEqual(open.CostBasis, 1000) {
		t.Errorf("open costBasis = %v, want 1000", open.CostBasis)
	}

	if len(report.Sold) != 2 {
		t.Fatalf("sold lots = %d, want 2", len(report.Sold))
	}
	// First sold lot: the full $100 lot at net price $250.
	first := report.Sold[0]
	if first.Quantity != 10 || !almostEqual(first.UnitCost, 100) {
		t.Errorf("first sold lot = %+v, want 10 @ 100", first)
	}
	if !almostEqual(first.RealizedPL, (250-100)*10) {
		t.Errorf("first realizedPL = %v, want 1500", first.RealizedPL)
	}
	// Second sold lot: 5 shares of the $200 lot.
	second := report.Sold[1]
	if second.Quantity != 5 || !almostEqual(second.UnitCost, 200) {
		t.Errorf("second sold lot = %+v, want 5 @ 200", second)
	}
	if !almostEqual(second.RealizedPL, (250-200)*5) {
		t.Errorf("second realizedPL = %v, want 250", second.RealizedPL)
	}
	if second.OpenDate != "2023-02-02, 10:00:00" || second.CloseDate != "2023-03-02, 10:00:00" {
		t.Errorf("second sold lot dates = %q / %q", second.OpenDate, second.CloseDate)
	}

	if !almostEqual(report.SoldQuantity, 15) {
		t.Errorf("soldQuantity = %v, want 15", report.SoldQuantity)
	}
	if !almostEqual(report.SoldRealizedPL, 1750) {
		t.Errorf("soldRealizedPL = %v, want 1750", report.SoldRealizedPL)
	}
}

// TestTrackLots_PartialSell tests proportional partial-lot splitting.
//
// WHY: Partial closes shrink the open lot's quantity and basis by the sell
// ratio; getting the proportion wrong silently skews avg cost forever.
func TestTrackLots_PartialSell(t *testing.T) {
	trades := []model.Trade{
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1000),
		sell("XYZ", "2023-02-02, 10:00:00", 5, 750, 0),
	}

	report := TrackLots(trades, nil)

	if len(report.Open) != 1 {
		t.Fatalf("open lots = %d, want 1", len(report.Open))
	}
	if report.Open[0].Quantity != 5 {
		t.Errorf("open quantity = %v, want 5", report.Open[0].Quantity)
	}
	if !almostEqual(report.Open[0].CostBasis, 500) {
		t.Errorf("open costBasis = %v, want 500", report.Open[0].CostBasis)
	}
	if len(report.Sold) != 1 {
		t.Fatalf("sold lots = %d, want 1", len(report.Sold))
	}
	if !almostEqual(report.Sold[0].CostBasis, 500) {
		t.Errorf("sold costBasis = %v, want 500", report.Sold[0].CostBasis)
	}
	if !almostEqual(report.Sold[0].RealizedPL, (150-100)*5) {
		t.Errorf("sold realizedPL = %v, want 250", report.Sold[0].RealizedPL)
	}
}

// TestTrackLots_FeeHandling tests fee-inclusive basis and net sell price.
//
// WHY: Buy basis arrives fee-inclusive from the statement, while sells
// report gross proceeds plus a negative fee. Mixing those up shifts P/L by
// twice the commission.
func TestTrackLots_FeeHandling(t *testing.T) {
	trades := []model.Trade{
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1010), // $1000 + $10 fee in basis
		sell("XYZ", "2023-02-02, 10:00:00", 10, 1500, 5),
	}

	report := TrackLots(trades, nil)

	if len(report.Sold) != 1 {
		t.Fatalf("sold lots = %d, want 1", len(report.Sold))
	}
	s := report.Sold[0]
	if !almostEqual(s.UnitCost, 101) {
		t.Errorf("unitCost = %v, want 101", s.UnitCost)
	}
	if !almostEqual(s.ClosePrice, 149.5) {
		t.Errorf("closePrice = %v, want 149.5", s.ClosePrice)
	}
	if !almostEqual(s.RealizedPL, (149.5-101)*10) {
		t.Errorf("realizedPL = %v, want 485", s.RealizedPL)
	}
}

// TestTrackLots_OverSell tests selling more than the open lots hold.
//
// WHY: Over-selling must empty the queue without error and without
// fabricating negative lots. The unmatched excess is dropped silently; the
// resulting under-accounted realized P/L is an accepted artifact.
func TestTrackLots_OverSell(t *testing.T) {
	trades := []model.Trade{
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1000),
		sell("XYZ", "2023-02-02, 10:00:00", 25, 5000, 0),
	}

	report := TrackLots(trades, nil)

	if len(report.Open) != 0 {
		t.Errorf("open lots = %d, want 0", len(report.Open))
	}
	if len(report.Sold) != 1 {
		t.Fatalf("sold lots = %d, want 1", len(report.Sold))
	}
	if report.Sold[0].Quantity != 10 {
		t.Errorf("sold quantity = %v, want 10 (excess dropped)", report.Sold[0].Quantity)
	}
}

// TestTrackLots_SellWithNoLots tests a sell arriving before any buy.
func TestTrackLots_SellWithNoLots(t *testing.T) {
	trades := []model.Trade{
		sell("XYZ", "2023-02-02, 10:00:00", 5, 750, 0),
	}

	report := TrackLots(trades, nil)
	if len(report.Open) != 0 || len(report.Sold) != 0 {
		t.Errorf("got %d open / %d sold lots, want none", len(report.Open), len(report.Sold))
	}
}

// TestTrackLots_CurrentPriceAnnotation tests open-lot enrichment.
func TestTrackLots_CurrentPriceAnnotation(t *testing.T) {
	trades := []model.Trade{
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1000),
	}
	price := 130.0

	report := TrackLots(trades, &price)

	if len(report.Open) != 1 {
		t.Fatalf("open lots = %d, want 1", len(report.Open))
	}
	lot := report.Open[0]
	if lot.CurrentPrice != 130 {
		t.Errorf("currentPrice = %v, want 130", lot.CurrentPrice)
	}
	if !almostEqual(lot.UnrealizedPL, 130*10-1000) {
		t.Errorf("unrealizedPL = %v, want 300", lot.UnrealizedPL)
	}
	if !almostEqual(report.OpenUnrealizedPL, 300) {
		t.Errorf("openUnrealizedPL total = %v, want 300", report.OpenUnrealizedPL)
	}
}

// TestTrackLots_UnsortedInput tests that the engine sorts by timestamp and
// keeps original order on ties.
func TestTrackLots_UnsortedInput(t *testing.T) {
	trades := []model.Trade{
		sell("XYZ", "2023-03-02, 10:00:00", 5, 1000, 0),
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1000),
	}

	report := TrackLots(trades, nil)
	if len(report.Sold) != 1 {
		t.Fatalf("sold lots = %d, want 1 (sell must process after buy)", len(report.Sold))
	}
	if report.OpenQuantity != 5 {
		t.Errorf("openQuantity = %v, want 5", report.OpenQuantity)
	}
}

// TestTrackLots_ZeroQuantityTrade tests the no-op branch.
func TestTrackLots_ZeroQuantityTrade(t *testing.T) {
	trades := []model.Trade{
		buy("XYZ", "2023-01-02, 10:00:00", 10, 1000),
		{Symbol: "XYZ", DateTime: "2023-01-03, 10:00:00", Quantity: 0, Proceeds: 99},
	}

	report := TrackLots(trades, nil)
	if report.OpenQuantity != 10 || len(report.Sold) != 0 {
		t.Errorf("zero-quantity trade changed state: %+v", report)
	}
}

// TestTrackLots_Empty tests the empty stream.
func TestTrackLots_Empty(t *testing.T) {
	report := TrackLots(nil, nil)
	if len(report.Open) != 0 || len(report.Sold) != 0 {
		t.Errorf("empty stream produced lots: %+v", report)
	}
	if report.OpenQuantity != 0 || report.SoldRealizedPL != 0 {
		t.Errorf("empty stream produced totals: %+v", report)
	}
}
