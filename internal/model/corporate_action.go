package model

import "time"

// CorporateAction represents one row of the "Corporate Actions" statement
// section. The free-text Description is the only semantically parsed field;
// splits and spinoffs are recognized from it by the accounting package.
type CorporateAction struct {
	ID            string    `json:"id"`
	Header        string    `json:"header"` // "Data" marks confirmed rows
	AssetCategory string    `json:"assetCategory"`
	Currency      string    `json:"currency"`
	ReportDate    string    `json:"reportDate"`
	DateTime      string    `json:"dateTime"`
	Description   string    `json:"description"`
	Quantity      float64   `json:"quantity"`
	Proceeds      float64   `json:"proceeds"`
	Value         float64   `json:"value"`
	RealizedPL    float64   `json:"realizedPL"`
	Code          string    `json:"code"`
	ImportedAt    time.Time `json:"importedAt,omitempty"`
}
