package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/id"
	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// Header is the CSV header for journal.csv. One row per journal line;
// entry-level fields (date, reference, memo, project) repeat on every
// line of the entry.
const Header = "line_id,date,account_code,debit,credit,reference,memo,project"

const (
	numFields  = 8
	dateFormat = "2006-01-02"
	colLineID  = 0
	colDate    = 1
	colAcct    = 2
	colDebit   = 3
	colCredit  = 4
	colRef     = 5
	colMemo    = 6
	colProject = 7
)

// lineRow is the flat CSV representation of one journal line.
type lineRow struct {
	LineID    string
	Date      time.Time
	Account   string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Reference string
	Memo      string
	Project   string
}

// ReadEntries reads journal.csv and reconstructs entries by grouping rows
// on their shared entry ID. Line order within an entry and entry order in
// the file are preserved.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	byID := make(map[string]*model.JournalEntry)
	var order []string
	for i, rec := range records[1:] {
		row, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		group := id.EntryGroup(row.LineID)
		entry, seen := byID[group]
		if !seen {
			entry = &model.JournalEntry{
				ID:        group,
				Date:      row.Date,
				Reference: row.Reference,
				Memo:      row.Memo,
				Project:   row.Project,
			}
			byID[group] = entry
			order = append(order, group)
		}
		entry.Lines = append(entry.Lines, model.JournalLine{
			AccountCode: row.Account,
			Debit:       row.Debit,
			Credit:      row.Credit,
		})
	}

	entries := make([]model.JournalEntry, 0, len(order))
	for _, g := range order {
		entries = append(entries, *byID[g])
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer, header included.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		if err := writeEntry(cw, e); err != nil {
			return err
		}
	}
	return cw.Error()
}

// AppendEntries appends entries to an existing journal.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for _, e := range entries {
		if err := writeEntry(cw, e); err != nil {
			return err
		}
	}
	return cw.Error()
}

func writeEntry(cw *csv.Writer, e model.JournalEntry) error {
	for i, l := range e.Lines {
		row := make([]string, numFields)
		row[colLineID] = id.FormatLineID(e.ID, i)
		row[colDate] = e.Date.Format(dateFormat)
		row[colAcct] = l.AccountCode
		if !l.Debit.IsZero() {
			row[colDebit] = l.Debit.StringFixed(2)
		}
		if !l.Credit.IsZero() {
			row[colCredit] = l.Credit.StringFixed(2)
		}
		row[colRef] = e.Reference
		row[colMemo] = e.Memo
		row[colProject] = e.Project

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing entry %s line %d: %w", e.ID, i+1, err)
		}
	}
	return nil
}

func unmarshalRow(record []string) (lineRow, error) {
	if len(record) != numFields {
		return lineRow{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return lineRow{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	debit := decimal.Zero
	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return lineRow{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	credit := decimal.Zero
	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return lineRow{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return lineRow{
		LineID:    record[colLineID],
		Date:      date,
		Account:   record[colAcct],
		Debit:     debit,
		Credit:    credit,
		Reference: record[colRef],
		Memo:      record[colMemo],
		Project:   record[colProject],
	}, nil
}
