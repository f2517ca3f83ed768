package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntryID(t *testing.T) {
	assert.Equal(t, "2025-03-001", FormatEntryID(2025, 3, 1))
	assert.Equal(t, "2025-12-099", FormatEntryID(2025, 12, 99))
}

func TestFormatLineID(t *testing.T) {
	assert.Equal(t, "2025-03-001a", FormatLineID("2025-03-001", 0))
	assert.Equal(t, "2025-03-001c", FormatLineID("2025-03-001", 2))
}

func TestParseEntryID(t *testing.T) {
	year, month, seq, err := ParseEntryID("2025-03-012")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 12, seq)
}

func TestParseEntryID_WithLineSuffix(t *testing.T) {
	year, month, seq, err := ParseEntryID("2025-03-012b")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 12, seq)
}

func TestParseEntryID_Invalid(t *testing.T) {
	for _, bad := range []string{"", "2025-03", "x-y-z", "2025-3x-001"} {
		_, _, _, err := ParseEntryID(bad)
		assert.Error(t, err, "ParseEntryID(%q)", bad)
	}
}

func TestEntryGroup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-001a", "2025-03-001"},
		{"2025-03-001", "2025-03-001"},
		{"2025-12-099abc", "2025-12-099"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EntryGroup(tt.in), "EntryGroup(%q)", tt.in)
	}
}

func TestNewPostingID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		pid := NewPostingID()
		require.NotEmpty(t, pid)
		assert.False(t, seen[pid], "duplicate posting ID %s", pid)
		seen[pid] = true
	}
}
