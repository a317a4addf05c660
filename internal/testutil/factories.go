package testutil

import (
	"database/sql"
	"testing"

	"github.com/stocklens/stocklens/internal/model"
)

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	// Simple buy with defaults
//	trade := testutil.NewTrade("AAPL").Build(t, db)
//
//	// Customized sell
//	trade := testutil.NewTrade("AAPL").
//	    At("2023-06-05, 14:02:10").
//	    Sell(5, 900).
//	    Build(t, db)
type TradeBuilder struct {
	trade model.Trade
}

// NewTrade creates a TradeBuilder for a buy of 10 shares with sensible defaults.
func NewTrade(symbol string) *TradeBuilder {
	return &TradeBuilder{
		trade: model.Trade{
			ID:                MakeID(),
			Section:           "Trades",
			Header:            "Data",
			DataDiscriminator: "Order",
			AssetCategory:     "Stocks",
			Currency:          "USD",
			Symbol:            symbol,
			DateTime:          "2023-01-02, 10:00:00",
			Quantity:          10,
			TradePrice:        100,
			Proceeds:          -1000,
			CommFee:           -1,
			Basis:             1001,
		},
	}
}

// At sets the statement timestamp.
func (b *TradeBuilder) At(dateTime string) *TradeBuilder {
	b.trade.DateTime = dateTime
	return b
}

// Buy makes the trade a buy of quantity shares with the given total cost
// basis (fees included).
func (b *TradeBuilder) Buy(quantity, basis float64) *TradeBuilder {
	b.trade.Quantity = quantity
	b.trade.Basis = basis
	b.trade.Proceeds = -basis
	b.trade.TradePrice = basis / quantity
	return b
}

// Sell makes the trade a sell of quantity shares with the given gross
// proceeds.
func (b *TradeBuilder) Sell(quantity, proceeds float64) *TradeBuilder {
	b.trade.Quantity = -quantity
	b.trade.Proceeds = proceeds
	b.trade.TradePrice = proceeds / quantity
	b.trade.Basis = -proceeds
	return b
}

// WithRealizedPL sets the statement-reported realized P/L.
func (b *TradeBuilder) WithRealizedPL(pl float64) *TradeBuilder {
	b.trade.RealizedPL = pl
	return b
}

// WithAssetCategory overrides the asset category, e.g. "Forex".
func (b *TradeBuilder) WithAssetCategory(category string) *TradeBuilder {
	b.trade.AssetCategory = category
	return b
}

// Build inserts the trade and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO trade (
			id, section, header, data_discriminator, asset_category, currency,
			symbol, date_time, quantity, trade_price, close_price, proceeds,
			comm_fee, basis, realized_pl, mtm_pl, code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.trade.ID, b.trade.Section, b.trade.Header, b.trade.DataDiscriminator,
		b.trade.AssetCategory, b.trade.Currency, b.trade.Symbol, b.trade.DateTime,
		b.trade.Quantity, b.trade.TradePrice, b.trade.ClosePrice, b.trade.Proceeds,
		b.trade.CommFee, b.trade.Basis, b.trade.RealizedPL, b.trade.MTMPL, b.trade.Code,
	)
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}

	return b.trade
}

// ActionBuilder provides a fluent interface for creating test corporate actions.
type ActionBuilder struct {
	action model.CorporateAction
}

// NewSplitAction creates an ActionBuilder describing an x-for-y split of a symbol.
func NewSplitAction(symbol, dateTime, description string) *ActionBuilder {
	return &ActionBuilder{
		action: model.CorporateAction{
			ID:            MakeID(),
			Header:        "Data",
			AssetCategory: "Stocks",
			Currency:      "USD",
			DateTime:      dateTime,
			Description:   description,
		},
	}
}

// WithQuantity sets the action quantity (spinoff share count).
func (b *ActionBuilder) WithQuantity(quantity float64) *ActionBuilder {
	b.action.Quantity = quantity
	return b
}

// Build inserts the corporate action and returns it.
func (b *ActionBuilder) Build(t *testing.T, db *sql.DB) model.CorporateAction {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO corporate_action (
			id, header, asset_category, currency, report_date, date_time,
			description, quantity, proceeds, value, realized_pl, code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.action.ID, b.action.Header, b.action.AssetCategory, b.action.Currency,
		b.action.ReportDate, b.action.DateTime, b.action.Description,
		b.action.Quantity, b.action.Proceeds, b.action.Value, b.action.RealizedPL,
		b.action.Code,
	)
	if err != nil {
		t.Fatalf("Failed to insert test corporate action: %v", err)
	}

	return b.action
}

// InsertDividend inserts a dividend row for a symbol.
func InsertDividend(t *testing.T, db *sql.DB, symbol string, amount float64) model.Dividend {
	t.Helper()

	d := model.Dividend{
		ID:       MakeID(),
		Header:   "Data",
		Currency: "USD",
		Date:     "2023-02-16",
		Amount:   amount,
		Symbol:   symbol,
	}

	_, err := db.Exec(`
		INSERT INTO dividend (
			id, header, currency, date, description, amount, symbol, per_share, quantity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Header, d.Currency, d.Date, d.Description, d.Amount, d.Symbol,
		d.PerShare, d.Quantity,
	)
	if err != nil {
		t.Fatalf("Failed to insert test dividend: %v", err)
	}

	return d
}

// InsertOpenPosition inserts an open position row carrying the
// statement-reported close price for a symbol.
func InsertOpenPosition(t *testing.T, db *sql.DB, symbol string, closePrice float64) model.OpenPosition {
	t.Helper()

	p := model.OpenPosition{
		ID:         MakeID(),
		Header:     "Data",
		Currency:   "USD",
		Symbol:     symbol,
		Mult:       1,
		ClosePrice: closePrice,
	}

	_, err := db.Exec(`
		INSERT INTO open_position (
			id, header, asset_category, currency, symbol, quantity, mult,
			cost_price, cost_basis, close_price, value, unrealized_pl, code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Header, p.AssetCategory, p.Currency, p.Symbol, p.Quantity,
		p.Mult, p.CostPrice, p.CostBasis, p.ClosePrice, p.Value, p.UnrealizedPL,
		p.Code,
	)
	if err != nil {
		t.Fatalf("Failed to insert test open position: %v", err)
	}

	return p
}

// InsertCashNAV inserts a "Cash" NAV row with the given current total.
func InsertCashNAV(t *testing.T, db *sql.DB, currentTotal float64) model.NAVRecord {
	t.Helper()

	n := model.NAVRecord{
		ID:           MakeID(),
		Header:       "Data",
		AssetClass:   "Cash",
		CurrentTotal: currentTotal,
	}

	_, err := db.Exec(`
		INSERT INTO nav_record (
			id, header, asset_class, prior_total, current_long, current_short,
			current_total, change
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Header, n.AssetClass, n.PriorTotal, n.CurrentLong,
		n.CurrentShort, n.CurrentTotal, n.Change,
	)
	if err != nil {
		t.Fatalf("Failed to insert test NAV record: %v", err)
	}

	return n
}
