package statement

import (
	"math"
	"regexp"

	"github.com/stocklens/stocklens/internal/model"
)

// dividendSymbolRe extracts the ticker from a dividend description such as
// "AAPL(US0378331005) Cash Dividend USD 0.24 per Share (Ordinary Dividend)".
var dividendSymbolRe = regexp.MustCompile(`^([A-Z.]+)\(`)

// perShareRe extracts the per-share amount from the same description.
var perShareRe = regexp.MustCompile(`USD\s+([\d.]+)\s+per Share`)

func tradeFromRecord(rec record) model.Trade {
	return model.Trade{
		Section:           sectionTrades,
		Header:            "Data",
		DataDiscriminator: rec.get("DataDiscriminator"),
		AssetCategory:     rec.get("Asset Category"),
		Currency:          rec.get("Currency"),
		Symbol:            rec.get("Symbol"),
		DateTime:          rec.get("Date/Time"),
		Quantity:          rec.num("Quantity"),
		TradePrice:        rec.num("T-Price", "T. Price"),
		ClosePrice:        rec.num("C-Price", "C. Price"),
		Proceeds:          rec.num("Proceeds"),
		CommFee:           rec.num("Comm/Fee"),
		Basis:             rec.num("Basis"),
		RealizedPL:        rec.num("Realized P/L"),
		MTMPL:             rec.num("MTM P/L"),
		Code:              rec.get("Code"),
	}
}

func actionFromRecord(rec record) model.CorporateAction {
	return model.CorporateAction{
		Header:        "Data",
		AssetCategory: rec.get("Asset Category"),
		Currency:      rec.get("Currency"),
		ReportDate:    rec.get("Report Date"),
		DateTime:      rec.get("Date/Time"),
		Description:   rec.get("Description"),
		Quantity:      rec.num("Quantity"),
		Proceeds:      rec.num("Proceeds"),
		Value:         rec.num("Value"),
		RealizedPL:    rec.num("Realized P/L"),
		Code:          rec.get("Code"),
	}
}

// dividendFromRecord maps a dividend row and derives the fields the
// statement only carries inside the description: the symbol, the per-share
// amount and the implied share count. The count is rounded to whole shares
// to absorb floating-point residue in amount/perShare.
func dividendFromRecord(rec record) model.Dividend {
	description := rec.get("Description")
	amount := rec.num("Amount")

	var symbol string
	if m := dividendSymbolRe.FindStringSubmatch(description); m != nil {
		symbol = m[1]
	}

	var perShare, quantity float64
	if m := perShareRe.FindStringSubmatch(description); m != nil {
		perShare = parseNum(m[1])
	}
	if perShare > 0 {
		quantity = math.Round(amount / perShare)
	}

	return model.Dividend{
		Header:      "Data",
		Currency:    rec.get("Currency"),
		Date:        rec.get("Date"),
		Description: description,
		Amount:      amount,
		Symbol:      symbol,
		PerShare:    perShare,
		Quantity:    quantity,
	}
}

func positionFromRecord(rec record) model.OpenPosition {
	return model.OpenPosition{
		Header:        "Data",
		AssetCategory: rec.get("Asset Category"),
		Currency:      rec.get("Currency"),
		Symbol:        rec.get("Symbol"),
		Quantity:      rec.num("Quantity"),
		Mult:          rec.num("Mult"),
		CostPrice:     rec.num("Cost Price"),
		CostBasis:     rec.num("Cost Basis"),
		ClosePrice:    rec.num("Close Price"),
		Value:         rec.num("Value"),
		UnrealizedPL:  rec.num("Unrealized P/L"),
		Code:          rec.get("Code"),
	}
}

func navFromRecord(rec record) model.NAVRecord {
	return model.NAVRecord{
		Header:       "Data",
		AssetClass:   rec.get("Asset Class"),
		PriorTotal:   rec.num("Prior Total"),
		CurrentLong:  rec.num("Current Long"),
		CurrentShort: rec.num("Current Short"),
		CurrentTotal: rec.num("Current Total"),
		Change:       rec.num("Change"),
	}
}
