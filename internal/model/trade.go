package model

import "time"

// Trade represents one row of the "Trades" section of an activity statement,
// or a synthetic trade derived from a corporate action (spinoff).
//
// DateTime keeps the statement's own string format ("2006-01-02, 15:04:05").
// All statement timestamps share that fixed width, so lexical comparison is
// chronological comparison; the accounting engine relies on this and must
// never reinterpret the field as a parsed time.
type Trade struct {
	ID                string    `json:"id"`
	Section           string    `json:"section"`           // "Trades" or "Corporate Action" for synthetic rows
	Header            string    `json:"header"`            // "Data" marks confirmed rows
	DataDiscriminator string    `json:"dataDiscriminator"` // "Order", "Spinoff", ...
	AssetCategory     string    `json:"assetCategory"`
	Currency          string    `json:"currency"`
	Symbol            string    `json:"symbol"`
	DateTime          string    `json:"dateTime"`
	Quantity          float64   `json:"quantity"` // signed: positive buy, negative sell
	TradePrice        float64   `json:"tradePrice"`
	ClosePrice        float64   `json:"closePrice"` // market price at report time
	Proceeds          float64   `json:"proceeds"`   // gross proceeds
	CommFee           float64   `json:"commFee"`    // commission/fee, negative-signed
	Basis             float64   `json:"basis"`      // statement-reported cost basis
	RealizedPL        float64   `json:"realizedPL"` // statement-reported realized P/L
	MTMPL             float64   `json:"mtmPL"`
	Code              string    `json:"code"`
	ImportedAt        time.Time `json:"importedAt,omitempty"`
}

// IsStock reports whether the trade is a confirmed stock trade eligible for
// lot tracking. Summary rows and non-stock instruments are excluded.
func (t Trade) IsStock() bool {
	return t.Header == "Data" && t.AssetCategory == "Stocks"
}
