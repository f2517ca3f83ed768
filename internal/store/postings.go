// Package store reads and writes the CSV files that make up a books
// directory. The computation packages never touch these files; callers
// load records here, compute, and save results back.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// PostingsHeader is the CSV header for postings.csv.
const PostingsHeader = "posting_id,date,description,account_code,kind,amount,project,fund,notes"

const (
	postingFields  = 9
	dateFormat     = "2006-01-02"
	pColID         = 0
	pColDate       = 1
	pColDesc       = 2
	pColAcct       = 3
	pColKind       = 4
	pColAmount     = 5
	pColProject    = 6
	pColFund       = 7
	pColNotes      = 8
	postingsFile   = "postings.csv"
	budgetsFile    = "budgets.csv"
)

var validKinds = map[model.PostingKind]bool{
	model.KindIncome:    true,
	model.KindExpense:   true,
	model.KindAsset:     true,
	model.KindLiability: true,
	model.KindTransfer:  true,
}

// ReadPostings reads postings.csv.
func ReadPostings(r io.Reader) ([]model.Posting, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = postingFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading postings CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var postings []model.Posting
	for i, rec := range records[1:] {
		p, err := UnmarshalPosting(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// WritePostings writes postings.csv, header included.
func WritePostings(w io.Writer, postings []model.Posting) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(PostingsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range postings {
		if err := cw.Write(MarshalPosting(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalPosting converts a Posting to a CSV row.
func MarshalPosting(p model.Posting) []string {
	row := make([]string, postingFields)
	row[pColID] = p.ID
	row[pColDate] = p.Date.Format(dateFormat)
	row[pColDesc] = p.Description
	row[pColAcct] = p.AccountCode
	row[pColKind] = string(p.Kind)
	row[pColAmount] = p.Amount.String()
	row[pColProject] = p.Project
	row[pColFund] = p.Fund
	row[pColNotes] = p.Notes
	return row
}

// UnmarshalPosting converts a CSV row to a Posting. Amounts are parsed
// strictly: anything that is not a decimal number is an error, never
// coerced.
func UnmarshalPosting(record []string) (model.Posting, error) {
	if len(record) != postingFields {
		return model.Posting{}, fmt.Errorf("expected %d fields, got %d", postingFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[pColDate])
	if err != nil {
		return model.Posting{}, fmt.Errorf("parsing date %q: %w", record[pColDate], err)
	}

	kind := model.PostingKind(record[pColKind])
	if !validKinds[kind] {
		return model.Posting{}, fmt.Errorf("unknown posting kind %q", record[pColKind])
	}

	amount, err := decimal.NewFromString(record[pColAmount])
	if err != nil {
		return model.Posting{}, fmt.Errorf("parsing amount %q: %w", record[pColAmount], err)
	}

	return model.Posting{
		ID:          record[pColID],
		Date:        date,
		Description: record[pColDesc],
		AccountCode: record[pColAcct],
		Kind:        kind,
		Amount:      amount,
		Project:     record[pColProject],
		Fund:        record[pColFund],
		Notes:       record[pColNotes],
	}, nil
}

// LoadPostings reads postings.csv from a books root. A missing file is an
// empty book, not an error.
func LoadPostings(booksRoot string) ([]model.Posting, error) {
	f, err := os.Open(filepath.Join(booksRoot, postingsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening postings: %w", err)
	}
	defer f.Close()

	return ReadPostings(f)
}

// SavePostings writes the full posting set to postings.csv.
func SavePostings(booksRoot string, postings []model.Posting) error {
	if err := os.MkdirAll(booksRoot, 0o755); err != nil {
		return fmt.Errorf("creating books dir: %w", err)
	}

	f, err := os.Create(filepath.Join(booksRoot, postingsFile))
	if err != nil {
		return fmt.Errorf("creating postings file: %w", err)
	}
	defer f.Close()

	if err := WritePostings(f, postings); err != nil {
		return fmt.Errorf("writing postings: %w", err)
	}
	return nil
}

// AppendPostings appends postings to postings.csv, creating the file and
// header if needed.
func AppendPostings(booksRoot string, postings []model.Posting) error {
	if err := os.MkdirAll(booksRoot, 0o755); err != nil {
		return fmt.Errorf("creating books dir: %w", err)
	}

	path := filepath.Join(booksRoot, postingsFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening postings: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(PostingsHeader, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, p := range postings {
		if err := cw.Write(MarshalPosting(p)); err != nil {
			return fmt.Errorf("writing posting %d: %w", i, err)
		}
	}
	return cw.Error()
}
