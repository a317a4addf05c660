package accounting

import (
	"math"
	"sort"

	"github.com/stocklens/stocklens/internal/model"
)

// Lot is an open cost-basis lot: a batch of shares acquired together and
// not yet fully sold. UnitCost is fee-inclusive because the statement's
// reported basis already includes commissions on buys.
type Lot struct {
	OpenDate     string  `json:"openDate"`
	Quantity     float64 `json:"quantity"`
	UnitCost     float64 `json:"unitCost"`
	CostBasis    float64 `json:"costBasis"`
	CurrentPrice float64 `json:"currentPrice,omitempty"`
	UnrealizedPL float64 `json:"unrealizedPL,omitempty"`
}

// SoldLot is an immutable snapshot taken when a lot, or part of one, is
// closed by a sell.
type SoldLot struct {
	OpenDate   string  `json:"openDate"`
	CloseDate  string  `json:"closeDate"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unitCost"`
	CostBasis  float64 `json:"costBasis"`
	ClosePrice float64 `json:"closePrice"`
	RealizedPL float64 `json:"realizedPL"`
}

// LotReport is the result of tracking one symbol's trade stream.
type LotReport struct {
	Open []Lot     `json:"openLots"`
	Sold []SoldLot `json:"soldLots"`

	OpenQuantity     float64 `json:"openQuantity"`
	OpenCostBasis    float64 `json:"openCostBasis"`
	OpenUnrealizedPL float64 `json:"openUnrealizedPL"`
	SoldQuantity     float64 `json:"soldQuantity"`
	SoldRealizedPL   float64 `json:"soldRealizedPL"`
}

// TrackLots consumes one symbol's trades in time order and produces the
// open-lot queue and the sold-lot history.
//
// Buys push a lot with fee-inclusive unit cost |basis|/quantity. Sells
// consume from the oldest lot first; the net sale price is
// (proceeds + commFee) / |quantity| since the fee is negative-signed.
// Selling more shares than the open lots hold empties the queue and stops:
// no negative lots are fabricated, and the excess is silently dropped.
// That under-accounts realized P/L for unmatched shares; a known property
// of dirty statement data, not to be corrected here.
//
// When currentPrice is non-nil every remaining open lot is annotated with
// it and its unrealized P/L. Ties in the timestamp order keep the original
// stream order.
func TrackLots(trades []model.Trade, currentPrice *float64) LotReport {
	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DateTime < sorted[j].DateTime })

	var open []Lot
	var sold []SoldLot

	for _, trade := range sorted {
		switch {
		case trade.Quantity > 0:
			costBasis := math.Abs(trade.Basis)
			open = append(open, Lot{
				OpenDate:  trade.DateTime,
				Quantity:  trade.Quantity,
				UnitCost:  costBasis / trade.Quantity,
				CostBasis: costBasis,
			})

		case trade.Quantity < 0:
			netProceeds := trade.Proceeds + trade.CommFee
			qtyToSell := math.Abs(trade.Quantity)
			netSellPrice := netProceeds / qtyToSell

			for qtyToSell > 0 && len(open) > 0 {
				oldest := &open[0]
				if oldest.Quantity <= qtyToSell {
					sold = append(sold, SoldLot{
						OpenDate:   oldest.OpenDate,
						CloseDate:  trade.DateTime,
						Quantity:   oldest.Quantity,
						UnitCost:   oldest.UnitCost,
						CostBasis:  oldest.CostBasis,
						ClosePrice: netSellPrice,
						RealizedPL: (netSellPrice - oldest.UnitCost) * oldest.Quantity,
					})
					qtyToSell -= oldest.Quantity
					open = open[1:]
				} else {
					sellRatio := qtyToSell / oldest.Quantity
					sold = append(sold, SoldLot{
						OpenDate:   oldest.OpenDate,
						CloseDate:  trade.DateTime,
						Quantity:   qtyToSell,
						UnitCost:   oldest.UnitCost,
						CostBasis:  oldest.CostBasis * sellRatio,
						ClosePrice: netSellPrice,
						RealizedPL: (netSellPrice - oldest.UnitCost) * qtyToSell,
					})
					oldest.Quantity -= qtyToSell
					oldest.CostBasis -= oldest.CostBasis * sellRatio
					qtyToSell = 0
				}
			}

		default:
			// zero-quantity rows should not occur; treated as a no-op
		}
	}

	report := LotReport{Open: open, Sold: sold}

	for i := range report.Open {
		if currentPrice != nil {
			report.Open[i].CurrentPrice = *currentPrice
			report.Open[i].UnrealizedPL = *currentPrice*report.Open[i].Quantity - report.Open[i].CostBasis
		}
		report.OpenQuantity += report.Open[i].Quantity
		report.OpenCostBasis += report.Open[i].CostBasis
		report.OpenUnrealizedPL += report.Open[i].UnrealizedPL
	}
	for _, s := range report.Sold {
		report.SoldQuantity += s.Quantity
		report.SoldRealizedPL += s.RealizedPL
	}

	return report
}
