package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// GenericParser parses any statement CSV with at least date, description
// and amount columns. Columns are located by header name when a header
// row is present, otherwise the first three columns are taken in that
// order. Amounts are signed: positive = deposit, negative = withdrawal.
type GenericParser struct{}

// genericDateFormats are tried in order when parsing dates.
var genericDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a statement CSV and returns its rows.
func (p *GenericParser) Parse(r io.Reader) ([]model.BankStatementRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count varies by bank

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	dateCol, descCol, amountCol, hasHeader := locateColumns(records[0])
	body := records
	if hasHeader {
		body = records[1:]
	}

	var rows []model.BankStatementRow
	for i, rec := range body {
		rowNum := i + 1
		if hasHeader {
			rowNum++
		}
		maxCol := dateCol
		if descCol > maxCol {
			maxCol = descCol
		}
		if amountCol > maxCol {
			maxCol = amountCol
		}
		if len(rec) <= maxCol {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", rowNum, maxCol+1, len(rec))
		}

		date, err := parseStatementDate(rec[dateCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		amount, err := parseStatementAmount(rec[amountCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		rows = append(rows, model.BankStatementRow{
			Date:        date,
			Description: strings.TrimSpace(rec[descCol]),
			Amount:      amount,
		})
	}
	return rows, nil
}

// locateColumns finds the date/description/amount columns from a header
// row. When the first row does not look like a header, positional columns
// 0,1,2 are assumed and the row is treated as data.
func locateColumns(first []string) (dateCol, descCol, amountCol int, hasHeader bool) {
	dateCol, descCol, amountCol = 0, 1, 2

	found := 0
	for i, name := range first {
		switch normalizeHeader(name) {
		case "date", "transactiondate", "postingdate", "valuedate":
			dateCol = i
			found++
		case "description", "memo", "narration", "details", "payee":
			descCol = i
			found++
		case "amount", "value", "transactionamount":
			amountCol = i
			found++
		}
	}
	return dateCol, descCol, amountCol, found >= 2
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func parseStatementDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range genericDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseStatementAmount parses a signed amount strictly. Thousands
// separators and a leading currency symbol are tolerated; anything else
// is an error, never coerced to zero.
func parseStatementAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := false

	// Accounting style: (150.00) means -150.00.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
