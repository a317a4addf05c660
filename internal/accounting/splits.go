package accounting

import (
	"fmt"
	"sort"

	"github.com/stocklens/stocklens/internal/model"
)

// DeriveSplits extracts every split from the given corporate actions,
// deduplicated by (symbol, date, ratio). Statements commonly repeat the
// same split action across revisions; duplicates would double-adjust.
// The result is sorted ascending by date.
func DeriveSplits(actions []model.CorporateAction) []Split {
	seen := make(map[string]struct{})
	var splits []Split

	for _, a := range actions {
		s, ok := SplitFromAction(a)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%s|%s|%g", s.Symbol, s.Date, s.Ratio)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		splits = append(splits, s)
	}

	sort.Slice(splits, func(i, j int) bool { return splits[i].Date < splits[j].Date })
	return splits
}

// AdjustForSplits rewrites historical trades for splits that occurred
// strictly after each trade's timestamp: quantity is multiplied by the
// ratio, trade and close prices divided by it. Splits on other symbols or
// dated on/before the trade are ignored. Multiplication is commutative, so
// cumulative splits apply in any order. The input slice is never mutated.
func AdjustForSplits(trades []model.Trade, splits []Split) []model.Trade {
	adjusted := make([]model.Trade, len(trades))
	for i, t := range trades {
		for _, s := range splits {
			if s.Symbol != t.Symbol || s.Date <= t.DateTime {
				continue
			}
			t.Quantity *= s.Ratio
			t.TradePrice /= s.Ratio
			t.ClosePrice /= s.Ratio
		}
		adjusted[i] = t
	}
	return adjusted
}
