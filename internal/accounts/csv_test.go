package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

func TestReadAccounts(t *testing.T) {
	csvData := `account_id,code,name,category,type,parent_code,placeholder,balance,description
,1000,Assets,asset,,,true,,
,1010,Checking,asset,bank,1000,,1500.00,Primary account
,4010,Grant Revenue,revenue,,,,,"Grants"
`
	accts, err := ReadAccounts(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, accts, 3)

	assert.Equal(t, "1000", accts[0].Code)
	assert.True(t, accts[0].Placeholder)
	assert.Equal(t, model.CategoryAsset, accts[1].Category)
	assert.Equal(t, "1500.00", accts[1].Balance.StringFixed(2))
	assert.Equal(t, "1000", accts[1].ParentCode)
}

func TestReadAccounts_UnknownCategory(t *testing.T) {
	csvData := `account_id,code,name,category,type,parent_code,placeholder,balance,description
,1010,Checking,equity,,,,,` + "\n"
	_, err := ReadAccounts(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestReadAccounts_MissingCode(t *testing.T) {
	csvData := `account_id,code,name,category,type,parent_code,placeholder,balance,description
,,Checking,asset,,,,,` + "\n"
	_, err := ReadAccounts(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing account code")
}

func TestWriteReadRoundTrip(t *testing.T) {
	in := DefaultChart()

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, in))

	out, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Code, out[i].Code)
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.Equal(t, in[i].Placeholder, out[i].Placeholder)
	}
}

func TestReadAccounts_Empty(t *testing.T) {
	accts, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, accts)
}
