package accounting

import (
	"math"
	"sort"

	"github.com/stocklens/stocklens/internal/model"
)

// TickerSummary is one symbol's aggregated position. The enrichment fields
// (CurrentPrice onward) stay zero until Enrich attaches resolved prices.
type TickerSummary struct {
	Symbol             string  `json:"symbol"`
	BuyQuantity        float64 `json:"buyQuantity"`
	BuySum             float64 `json:"buySum"`
	SellQuantity       float64 `json:"sellQuantity"`
	SellSum            float64 `json:"sellSum"`
	NetQuantity        float64 `json:"netQuantity"`
	RealizedPL         float64 `json:"realizedPL"`
	AvgBuyPrice        float64 `json:"avgBuyPrice"`
	Dividends          float64 `json:"dividends"`
	CurrentPrice       float64 `json:"currentPrice"`
	MarketValue        float64 `json:"marketValue"`
	UnrealizedPL       float64 `json:"unrealizedPL"`
	TotalGain          float64 `json:"totalGain"`
	PortfolioWeight    float64 `json:"portfolioWeight"`
	DailyChange        float64 `json:"dailyChange"`
	DailyChangePercent float64 `json:"dailyChangePercent"`
}

// PositionStatus classifies a summary by its net quantity.
type PositionStatus string

const (
	StatusActive PositionStatus = "active"
	StatusClosed PositionStatus = "closed"
	// StatusAnomaly marks a negative net quantity: a short position or a
	// data error in the source records.
	StatusAnomaly PositionStatus = "anomaly"
)

// Status returns active for net long positions, closed for flat ones and
// anomaly for negative net quantity.
func (s TickerSummary) Status() PositionStatus {
	switch {
	case s.NetQuantity > 0:
		return StatusActive
	case s.NetQuantity == 0:
		return StatusClosed
	default:
		return StatusAnomaly
	}
}

// summaryLot is the reduced lot shape the aggregator keeps per symbol. Only
// remaining quantity and cost basis matter here; full lot detail is
// TrackLots' job.
type summaryLot struct {
	quantity  float64
	costBasis float64
}

// ComputeSummaries folds trades and dividends into one TickerSummary per
// distinct symbol, sorted ascending by symbol.
//
// Trades are stable-sorted by timestamp first; the per-symbol FIFO queue
// that backs AvgBuyPrice needs time order. AvgBuyPrice is the cost basis of
// the remaining open lots divided by their remaining quantity, or 0 once
// the position is flat. Dividends for symbols without trades are dropped.
func ComputeSummaries(trades []model.Trade, dividends []model.Dividend) []TickerSummary {
	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DateTime < sorted[j].DateTime })

	summaries := make(map[string]*TickerSummary)
	lots := make(map[string][]summaryLot)

	for _, trade := range sorted {
		entry, ok := summaries[trade.Symbol]
		if !ok {
			entry = &TickerSummary{Symbol: trade.Symbol}
			summaries[trade.Symbol] = entry
		}

		switch {
		case trade.Quantity > 0:
			entry.BuyQuantity += trade.Quantity
			entry.BuySum += math.Abs(trade.Basis)
			lots[trade.Symbol] = append(lots[trade.Symbol], summaryLot{
				quantity:  trade.Quantity,
				costBasis: math.Abs(trade.Basis),
			})

		case trade.Quantity < 0:
			entry.SellQuantity += math.Abs(trade.Quantity)
			entry.SellSum += math.Abs(trade.Basis)

			qtyToSell := math.Abs(trade.Quantity)
			queue := lots[trade.Symbol]
			for qtyToSell > 0 && len(queue) > 0 {
				oldest := &queue[0]
				if oldest.quantity <= qtyToSell {
					qtyToSell -= oldest.quantity
					queue = queue[1:]
				} else {
					sellRatio := qtyToSell / oldest.quantity
					oldest.quantity -= qtyToSell
					oldest.costBasis -= oldest.costBasis * sellRatio
					qtyToSell = 0
				}
			}
			lots[trade.Symbol] = queue
		}

		entry.NetQuantity += trade.Quantity
		entry.RealizedPL += trade.RealizedPL
	}

	for _, div := range dividends {
		if entry, ok := summaries[div.Symbol]; ok {
			entry.Dividends += div.Amount
		}
	}

	result := make([]TickerSummary, 0, len(summaries))
	for symbol, entry := range summaries {
		if entry.NetQuantity > 0 && len(lots[symbol]) > 0 {
			var remainingBasis, remainingQty float64
			for _, lot := range lots[symbol] {
				remainingBasis += lot.costBasis
				remainingQty += lot.quantity
			}
			entry.AvgBuyPrice = remainingBasis / remainingQty
		} else {
			entry.AvgBuyPrice = 0
		}
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Symbol < result[j].Symbol })
	return result
}
