package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(action, ref string) Entry {
	return Entry{
		Timestamp: time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC),
		Actor:     "payroll",
		Action:    action,
		Details:   "3 employees",
		Ref:       ref,
	}
}

func TestAppendAndRead(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Append(root, []Entry{entry("payroll-run", "2025-03-001")}))
	require.NoError(t, Append(root, []Entry{entry("import", "june.csv")}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "payroll-run", entries[0].Action)
	assert.Equal(t, "june.csv", entries[1].Ref)
	assert.Equal(t, 2025, entries[0].Timestamp.Year())
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	in := entry("reconcile-finish", "session-1")
	in.CommitHash = "abc1234"

	out, err := UnmarshalEntry(MarshalEntry(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalEntry_BadTimestamp(t *testing.T) {
	_, err := UnmarshalEntry([]string{"yesterday", "a", "b", "c", "d", "e"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing timestamp")
}
