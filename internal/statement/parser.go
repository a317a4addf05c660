// Package statement parses IBKR-style activity-statement CSV exports.
//
// An activity statement is a single CSV file holding many sections: the
// first column of every row names the section ("Trades", "Dividends", ...)
// and the second column distinguishes "Header" rows, which define the
// section's columns, from "Data" rows, which carry records. Sections can
// restate their header row mid-file; the most recent header applies.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stocklens/stocklens/internal/model"
)

// Statement holds the parsed records of the sections this application
// consumes. All other sections are skipped.
type Statement struct {
	Trades           []model.Trade
	CorporateActions []model.CorporateAction
	Dividends        []model.Dividend
	OpenPositions    []model.OpenPosition
	NAV              []model.NAVRecord
}

const (
	sectionTrades           = "Trades"
	sectionCorporateActions = "Corporate Actions"
	sectionDividends        = "Dividends"
	sectionOpenPositions    = "Open Positions"
	sectionNAV              = "Net Asset Value"
)

// Parse reads an activity statement and returns the recognized records.
// Only confirmed ("Data") rows are kept. Rows are returned in file order,
// which for trades is chronological order within the statement.
func Parse(r io.Reader) (Statement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sections have different column counts
	reader.LazyQuotes = true

	var stmt Statement
	headers := make(map[string][]string)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Statement{}, fmt.Errorf("failed to read statement row: %w", err)
		}
		if len(row) < 2 {
			continue
		}

		section := row[0]
		switch row[1] {
		case "Header":
			headers[section] = row[2:]
			continue
		case "Data":
		default:
			// Total/SubTotal/Notes rows carry no records.
			continue
		}

		cols := newRecord(headers[section], row[2:])
		if cols == nil {
			continue
		}

		switch section {
		case sectionTrades:
			stmt.Trades = append(stmt.Trades, tradeFromRecord(cols))
		case sectionCorporateActions:
			stmt.CorporateActions = append(stmt.CorporateActions, actionFromRecord(cols))
		case sectionDividends:
			stmt.Dividends = append(stmt.Dividends, dividendFromRecord(cols))
		case sectionOpenPositions:
			stmt.OpenPositions = append(stmt.OpenPositions, positionFromRecord(cols))
		case sectionNAV:
			stmt.NAV = append(stmt.NAV, navFromRecord(cols))
		}
	}

	return stmt, nil
}

// record maps a data row's values by the section's header names.
type record map[string]string

func newRecord(header, values []string) record {
	if len(header) == 0 {
		return nil
	}
	rec := make(record, len(header))
	for i, name := range header {
		if i >= len(values) {
			break
		}
		rec[name] = values[i]
	}
	return rec
}

// get returns the first present column among the given names. Statement
// revisions vary between "T-Price" and "T. Price" style headers.
func (r record) get(names ...string) string {
	for _, name := range names {
		if v, ok := r[name]; ok {
			return v
		}
	}
	return ""
}

// num parses a statement numeric field via parseNum.
func (r record) num(names ...string) float64 {
	return parseNum(r.get(names...))
}

// parseNum parses a statement numeric field. Thousands separators are
// stripped; anything unparseable, including the empty string, degrades to
// 0 so that dirty rows reduce totals instead of aborting an import.
func parseNum(s string) float64 {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
