package accounting

import (
	"regexp"
	"strconv"

	"github.com/stocklens/stocklens/internal/model"
)

// splitRe matches split descriptions such as
// "AAPL(US0378331005) Split 4 for 1 ...": a ticker of uppercase letters and
// dots, a parenthesized identifier, the word Split and the two ratio terms.
var splitRe = regexp.MustCompile(`^([A-Z.]+)\(.*\)\s+Split\s+(\d+)\s+for\s+(\d+)`)

// spinoffRe matches spinoff descriptions such as
// "MMM(US88579Y1010) Spinoff  1 for 4 (SOLV, SOLVENTUM CORP-W/I, US83444M1018)".
// The captured group is the spun-off symbol: everything after the second
// opening parenthesis up to the first comma.
var spinoffRe = regexp.MustCompile(`^.*\(.*\)\s+Spinoff\s+.*\(([^,]+),`)

// Kind is the classification of a corporate action's description.
type Kind int

const (
	// Unclassified marks actions whose description matches no known pattern.
	// They are silently excluded from split and spinoff derivation.
	Unclassified Kind = iota
	KindSplit
	KindSpinoff
)

// Split is a share split derived from a corporate action:
// Ratio is newShares/oldShares, Date the action's statement timestamp.
type Split struct {
	Symbol string  `json:"symbol"`
	Ratio  float64 `json:"ratio"`
	Date   string  `json:"date"`
}

// Classify determines whether an action describes a split, a spinoff, or
// neither. Split and spinoff checks are independent; each consumer applies
// only its own pattern.
func Classify(a model.CorporateAction) Kind {
	if _, ok := SplitFromAction(a); ok {
		return KindSplit
	}
	if _, ok := SpinoffTrade(a); ok {
		return KindSpinoff
	}
	return Unclassified
}

// SplitFromAction parses a split out of the action's description.
// It returns false when the description does not match, either ratio term
// fails to parse, or the denominator is zero.
func SplitFromAction(a model.CorporateAction) (Split, bool) {
	m := splitRe.FindStringSubmatch(a.Description)
	if m == nil {
		return Split{}, false
	}

	x, errX := strconv.Atoi(m[2])
	y, errY := strconv.Atoi(m[3])
	if errX != nil || errY != nil || y == 0 {
		return Split{}, false
	}

	return Split{
		Symbol: m[1],
		Ratio:  float64(x) / float64(y),
		Date:   a.DateTime,
	}, true
}

// SpinoffTrade converts a qualifying spinoff action into a synthetic
// zero-cost trade for the spun-off symbol. Only confirmed ("Data") actions
// with a non-zero quantity qualify. Price and all monetary fields are zero
// so the spun-off symbol opens a lot at zero cost basis.
func SpinoffTrade(a model.CorporateAction) (model.Trade, bool) {
	if a.Header != "Data" {
		return model.Trade{}, false
	}
	m := spinoffRe.FindStringSubmatch(a.Description)
	if m == nil || a.Quantity == 0 {
		return model.Trade{}, false
	}

	return model.Trade{
		Section:           "Corporate Action",
		Header:            "Data",
		DataDiscriminator: "Spinoff",
		AssetCategory:     a.AssetCategory,
		Currency:          a.Currency,
		Symbol:            m[1],
		DateTime:          a.DateTime,
		Quantity:          a.Quantity,
		Code:              a.Code,
	}, true
}

// SpinoffTrades emits one synthetic trade per qualifying spinoff action.
func SpinoffTrades(actions []model.CorporateAction) []model.Trade {
	var trades []model.Trade
	for _, a := range actions {
		if t, ok := SpinoffTrade(a); ok {
			trades = append(trades, t)
		}
	}
	return trades
}
