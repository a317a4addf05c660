package accounting

import "sort"

// Quote is a resolved market quote for one symbol. Change and
// ChangePercent are the day's move; they stay zero for symbols resolved
// from reported statement prices rather than a live source.
type Quote struct {
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// SummaryTotals is the footer reducer output over a set of summaries.
type SummaryTotals struct {
	RealizedPL   float64 `json:"realizedPL"`
	MarketValue  float64 `json:"marketValue"`
	UnrealizedPL float64 `json:"unrealizedPL"`
	Dividends    float64 `json:"dividends"`
	TotalGain    float64 `json:"totalGain"`
	DailyChange  float64 `json:"dailyChange"`
}

// Enrich attaches market prices to the summaries and returns the enriched
// copies together with the total portfolio value (stock market value plus
// cash).
//
// Price resolution per symbol: live quote, else reported statement price,
// else 0. Derived fields:
//
//	marketValue   = netQuantity × price
//	unrealizedPL  = marketValue − netQuantity × avgBuyPrice
//	totalGain     = realizedPL + unrealizedPL + dividends
//	dailyChange   = netQuantity × quote change
//	weight        = marketValue / totalValue, 0 when totalValue is 0
//
// The input slice is not mutated.
func Enrich(summaries []TickerSummary, quotes map[string]Quote, reported map[string]float64, cash float64) ([]TickerSummary, float64) {
	enriched := make([]TickerSummary, len(summaries))

	var stockValue float64
	for i, item := range summaries {
		quote, hasQuote := quotes[item.Symbol]

		price := quote.Price
		if !hasQuote || price == 0 {
			price = reported[item.Symbol]
		}

		item.CurrentPrice = price
		item.MarketValue = item.NetQuantity * price
		item.UnrealizedPL = item.MarketValue - item.NetQuantity*item.AvgBuyPrice
		item.TotalGain = item.RealizedPL + item.UnrealizedPL + item.Dividends
		item.DailyChange = item.NetQuantity * quote.Change
		item.DailyChangePercent = quote.ChangePercent

		stockValue += item.MarketValue
		enriched[i] = item
	}

	totalValue := stockValue + cash
	for i := range enriched {
		if totalValue > 0 {
			enriched[i].PortfolioWeight = enriched[i].MarketValue / totalValue
		} else {
			enriched[i].PortfolioWeight = 0
		}
	}

	return enriched, totalValue
}

// SortKey selects a TickerSummary field and a direction for SortSummaries.
type SortKey struct {
	Field string
	Desc  bool
}

// SortFields lists the fields SortSummaries accepts.
var SortFields = map[string]bool{
	"symbol": true, "buyQuantity": true, "buySum": true,
	"sellQuantity": true, "sellSum": true, "netQuantity": true,
	"realizedPL": true, "avgBuyPrice": true, "dividends": true,
	"currentPrice": true, "marketValue": true, "unrealizedPL": true,
	"totalGain": true, "portfolioWeight": true, "dailyChange": true,
	"dailyChangePercent": true,
}

// SortSummaries returns a stably sorted copy of data ordered by the given
// keys in priority order. Unknown fields compare equal, leaving the
// original order for those keys.
func SortSummaries(data []TickerSummary, keys ...SortKey) []TickerSummary {
	sorted := make([]TickerSummary, len(data))
	copy(sorted, data)

	sort.SliceStable(sorted, func(i, j int) bool {
		for _, key := range keys {
			c := compareField(sorted[i], sorted[j], key.Field)
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	return sorted
}

func compareField(a, b TickerSummary, field string) int {
	if field == "symbol" {
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		default:
			return 0
		}
	}

	av, bv := numericField(a, field), numericField(b, field)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func numericField(s TickerSummary, field string) float64 {
	switch field {
	case "buyQuantity":
		return s.BuyQuantity
	case "buySum":
		return s.BuySum
	case "sellQuantity":
		return s.SellQuantity
	case "sellSum":
		return s.SellSum
	case "netQuantity":
		return s.NetQuantity
	case "realizedPL":
		return s.RealizedPL
	case "avgBuyPrice":
		return s.AvgBuyPrice
	case "dividends":
		return s.Dividends
	case "currentPrice":
		return s.CurrentPrice
	case "marketValue":
		return s.MarketValue
	case "unrealizedPL":
		return s.UnrealizedPL
	case "totalGain":
		return s.TotalGain
	case "portfolioWeight":
		return s.PortfolioWeight
	case "dailyChange":
		return s.DailyChange
	case "dailyChangePercent":
		return s.DailyChangePercent
	default:
		return 0
	}
}

// Totals sums the footer fields across the given summaries.
func Totals(data []TickerSummary) SummaryTotals {
	var t SummaryTotals
	for _, item := range data {
		t.RealizedPL += item.RealizedPL
		t.MarketValue += item.MarketValue
		t.UnrealizedPL += item.UnrealizedPL
		t.Dividends += item.Dividends
		t.TotalGain += item.TotalGain
		t.DailyChange += item.DailyChange
	}
	return t
}
