package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grantbooks-dev/grantbooks/internal/id"
	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// Service appends validated journal entries to per-month journal.csv
// files under a books root. Entries that fail Check are refused before
// anything is written.
type Service struct {
	booksRoot string
	accounts  AccountChecker
}

// NewService creates a journal Service.
func NewService(booksRoot string, accounts AccountChecker) *Service {
	return &Service{booksRoot: booksRoot, accounts: accounts}
}

// Append assigns the next entry ID for the entry's month, validates, and
// appends the entry to that month's journal.csv. The entry's ID field is
// ignored on input. Returns the assigned entry ID.
func (s *Service) Append(entry model.JournalEntry) (string, error) {
	year := entry.Date.Year()
	month := int(entry.Date.Month())

	seq, err := s.NextEntrySeq(year, month)
	if err != nil {
		return "", err
	}
	entry.ID = id.FormatEntryID(year, month, seq)

	if verrs := Check(entry, s.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, []model.JournalEntry{entry}); err != nil {
		return "", fmt.Errorf("appending entry: %w", err)
	}

	return entry.ID, nil
}

// ReadMonth reads all entries for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.JournalEntry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// ReadYear reads all entries for a year, month by month.
func (s *Service) ReadYear(year int) ([]model.JournalEntry, error) {
	var all []model.JournalEntry
	for month := 1; month <= 12; month++ {
		entries, err := s.ReadMonth(year, month)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, e := range entries {
		_, _, seq, err := id.ParseEntryID(e.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.booksRoot, "journal", fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
