package model

import "time"

// Dividend represents one row of the "Dividends" statement section.
//
// The statement does not carry the symbol as its own column; Symbol,
// PerShare and Quantity are parsed out of the Description at import time
// (e.g. "AAPL(US0378331005) Cash Dividend USD 0.24 per Share (Ordinary
// Dividend)"). Quantity is the implied share count, rounded to the nearest
// whole share.
type Dividend struct {
	ID          string    `json:"id"`
	Header      string    `json:"header"`
	Currency    string    `json:"currency"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Symbol      string    `json:"symbol"`
	PerShare    float64   `json:"perShare"`
	Quantity    float64   `json:"quantity"`
	ImportedAt  time.Time `json:"importedAt,omitempty"`
}
