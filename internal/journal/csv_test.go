package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func sampleEntry() model.JournalEntry {
	return model.JournalEntry{
		ID:        "2025-03-001",
		Date:      date(2025, 3, 15),
		Reference: "PR-2025-03",
		Memo:      "March payroll",
		Project:   "water-project",
		Lines: []model.JournalLine{
			debit("5100", "5350.00"),
			credit("1010", "3550.00"),
			credit("2200", "1000.00"),
			credit("2210", "500.00"),
			credit("2220", "300.00"),
		},
	}
}

func TestWriteReadEntriesRoundTrip(t *testing.T) {
	in := []model.JournalEntry{
		sampleEntry(),
		{
			ID:   "2025-03-002",
			Date: date(2025, 3, 20),
			Memo: "Office supplies",
			Lines: []model.JournalLine{
				debit("5100", "42.50"),
				credit("1010", "42.50"),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, in))

	out, err := ReadEntries(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "2025-03-001", out[0].ID)
	assert.Equal(t, "March payroll", out[0].Memo)
	assert.Equal(t, "water-project", out[0].Project)
	require.Len(t, out[0].Lines, 5)
	assert.Equal(t, "5350.00", out[0].Lines[0].Debit.StringFixed(2))
	assert.Equal(t, "3550.00", out[0].Lines[1].Credit.StringFixed(2))

	assert.Equal(t, "2025-03-002", out[1].ID)
	require.Len(t, out[1].Lines, 2)
}

func TestReadEntries_GroupsLinesByEntry(t *testing.T) {
	csvData := Header + "\n" +
		"2025-03-001a,2025-03-15,5100,100.00,,,Rent,\n" +
		"2025-03-001b,2025-03-15,1010,,100.00,,Rent,\n" +
		"2025-03-002a,2025-03-16,5100,20.00,,,Stamps,\n" +
		"2025-03-002b,2025-03-16,1010,,20.00,,Stamps,\n"

	entries, err := ReadEntries(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[0].Lines, 2)
	assert.Equal(t, "Rent", entries[0].Memo)
	assert.Len(t, entries[1].Lines, 2)
}

func TestReadEntries_BadAmount(t *testing.T) {
	csvData := Header + "\n" +
		"2025-03-001a,2025-03-15,5100,not-a-number,,,Rent,\n"

	_, err := ReadEntries(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing debit")
}

func TestReadEntries_Empty(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
