package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"), "format lookup is case-insensitive")
	assert.NotNil(t, r.Get("chase"))
	assert.Nil(t, r.Get("unknown"))
	assert.Len(t, r.Formats(), 2)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}

func TestGenericParse_WithHeader(t *testing.T) {
	csvData := `Date,Description,Amount
2025-06-01,UMEME utility payment,-150.00
2025-06-03,"Grant wire, Q2",10000.00
`
	rows, err := (&GenericParser{}).Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "UMEME utility payment", rows[0].Description)
	assert.Equal(t, "-150.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, 1, rows[0].Date.Day())
	assert.Equal(t, "10000.00", rows[1].Amount.StringFixed(2))
}

func TestGenericParse_HeaderColumnOrderVaries(t *testing.T) {
	csvData := `Amount,Posting Date,Memo
-42.50,2025-06-02,Stationery
`
	rows, err := (&GenericParser{}).Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Stationery", rows[0].Description)
	assert.Equal(t, "-42.50", rows[0].Amount.StringFixed(2))
}

func TestGenericParse_NoHeaderUsesPositionalColumns(t *testing.T) {
	csvData := "2025-06-01,Utility payment,-150.00\n"
	rows, err := (&GenericParser{}).Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Utility payment", rows[0].Description)
}

func TestGenericParse_ExtraColumnsTolerated(t *testing.T) {
	csvData := `Date,Description,Amount,Balance,Reference
2025-06-01,Deposit,500.00,1500.00,ref-1
`
	rows, err := (&GenericParser{}).Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "500.00", rows[0].Amount.StringFixed(2))
}

func TestGenericParse_AmountStyles(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1,200.50", "1200.50"},
		{"$99.00", "99.00"},
		{"(150.00)", "-150.00"},
		{"-0.01", "-0.01"},
	}
	for _, tt := range tests {
		amount, err := parseStatementAmount(tt.raw)
		require.NoError(t, err, "parseStatementAmount(%q)", tt.raw)
		assert.Equal(t, tt.want, amount.StringFixed(2), "parseStatementAmount(%q)", tt.raw)
	}
}

func TestGenericParse_BadAmountIsError(t *testing.T) {
	csvData := `Date,Description,Amount
2025-06-01,Deposit,five hundred
`
	_, err := (&GenericParser{}).Parse(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestGenericParse_BadDateIsError(t *testing.T) {
	csvData := `Date,Description,Amount
junk,Deposit,500.00
`
	_, err := (&GenericParser{}).Parse(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized date")
}

func TestChaseParse(t *testing.T) {
	csvData := `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,06/01/2025,UMEME PAYMENT,-150.00,ACH_DEBIT,850.00,
CREDIT,06/03/2025,GRANT WIRE,10000.00,WIRE_IN,10850.00,
`
	rows, err := (&ChaseParser{}).Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "UMEME PAYMENT", rows[0].Description)
	assert.Equal(t, "-150.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, 6, int(rows[0].Date.Month()))
}

func TestScanAndMarkProcessed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "june.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "notes.txt"), []byte("x"), 0o644))

	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1, "only CSV files are picked up")
	assert.Equal(t, "june.csv", files[0].Name)

	require.NoError(t, MarkProcessed(root, "june.csv"))
	files, err = Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = os.Stat(filepath.Join(root, "import", "processed", "june.csv"))
	assert.NoError(t, err)
}

func TestScan_MissingDirIsEmpty(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

// chartStub implements AccountLookup for testing.
type chartStub map[string]bool

func (c chartStub) Exists(code string) bool { return c[code] }

func TestResolvePostings(t *testing.T) {
	postings := []model.Posting{
		{ID: "p1", AccountCode: "5010", Project: "water-project"},
		{ID: "p2", AccountCode: "9999"},
		{ID: "p3", AccountCode: "5010", Project: "mystery"},
	}

	kept, report := ResolvePostings(postings, chartStub{"5010": true}, []string{"water-project"})
	require.Len(t, kept, 2)
	assert.Equal(t, "p1", kept[0].ID)
	assert.Equal(t, "water-project", kept[0].Project)
	assert.Equal(t, "", kept[1].Project, "unknown project cleared, posting kept")

	assert.Equal(t, 1, report.SkippedPostings)
	assert.Equal(t, []string{"9999"}, report.UnknownAccounts)
	assert.Equal(t, []string{"mystery"}, report.UnknownProjects)
}

func TestVerifyChart(t *testing.T) {
	chart := []model.Account{
		{Code: "1000", Category: model.CategoryAsset},
		{Code: "1010", Category: model.CategoryAsset, ParentCode: "1000"},
		{Code: "1020", Category: model.CategoryExpense, ParentCode: "1000"},
		{Code: "2010", Category: model.CategoryLiability, ParentCode: "8888"},
	}

	report := VerifyChart(chart)
	assert.Equal(t, []string{"2010"}, report.OrphanAccounts)
	assert.Equal(t, []string{"1020"}, report.CategoryClashes)
}

func TestVerifyChart_Clean(t *testing.T) {
	report := VerifyChart([]model.Account{
		{Code: "1000", Category: model.CategoryAsset},
		{Code: "1010", Category: model.CategoryAsset, ParentCode: "1000"},
	})
	assert.Empty(t, report.OrphanAccounts)
	assert.Empty(t, report.CategoryClashes)
}
