package model

import "time"

// OpenPosition represents one row of the "Open Positions" statement section.
// Its ClosePrice is the last statement-reported price for the symbol and
// serves as the price fallback when no live quote resolves.
type OpenPosition struct {
	ID            string    `json:"id"`
	Header        string    `json:"header"`
	AssetCategory string    `json:"assetCategory"`
	Currency      string    `json:"currency"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	Mult          float64   `json:"mult"`
	CostPrice     float64   `json:"costPrice"`
	CostBasis     float64   `json:"costBasis"`
	ClosePrice    float64   `json:"closePrice"`
	Value         float64   `json:"value"`
	UnrealizedPL  float64   `json:"unrealizedPL"`
	Code          string    `json:"code"`
	ImportedAt    time.Time `json:"importedAt,omitempty"`
}

// NAVRecord represents one row of the "Net Asset Value" statement section.
// The latest row with asset class "Cash" provides the account cash balance.
type NAVRecord struct {
	ID           string    `json:"id"`
	Header       string    `json:"header"`
	AssetClass   string    `json:"assetClass"`
	PriorTotal   float64   `json:"priorTotal"`
	CurrentLong  float64   `json:"currentLong"`
	CurrentShort float64   `json:"currentShort"`
	CurrentTotal float64   `json:"currentTotal"`
	Change       float64   `json:"change"`
	ImportedAt   time.Time `json:"importedAt,omitempty"`
}
