package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grantbooks.yaml")

	cfg := Default("Clearwater Initiative")
	cfg.Projects = []string{"water-project", "school-project"}
	cfg.Payroll.Employees = []EmployeeConfig{
		{
			ID:       "e1",
			Name:     "A. Nansubuga",
			GrossPay: "5000",
			PAYERate: "0.20",
			ProjectRates: []ProjectRateConfig{
				{Project: "water-project", Fraction: "0.6"},
				{Project: "school-project", Fraction: "0.4"},
			},
		},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Clearwater Initiative", loaded.Organization.Name)
	assert.Equal(t, 3, loaded.Reconciliation.WindowDays)
	assert.Equal(t, []string{"water-project", "school-project"}, loaded.Projects)
	require.Len(t, loaded.Payroll.Employees, 1)
	assert.Equal(t, "0.20", loaded.Payroll.Employees[0].PAYERate)
}

func TestDefault(t *testing.T) {
	cfg := Default("Test Org")
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, 3, cfg.Reconciliation.WindowDays)
	assert.Equal(t, "0.01", cfg.Reconciliation.AmountEpsilon)
	assert.Equal(t, "1010", cfg.Payroll.Accounts.CashAccount)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestReconciliationEpsilon(t *testing.T) {
	eps, err := Default("x").Reconciliation.Epsilon()
	require.NoError(t, err)
	assert.Equal(t, "0.01", eps.String())

	bad := ReconciliationConfig{AmountEpsilon: "a penny"}
	_, err = bad.Epsilon()
	assert.Error(t, err)
}

func TestEmployeeCompensation(t *testing.T) {
	ec := EmployeeConfig{
		ID:                  "e1",
		Name:                "A. Nansubuga",
		GrossPay:            "5000",
		PAYERate:            "0.20",
		EmployeePensionRate: "0.05",
		AdvanceLoan:         "100",
		ProjectRates:        []ProjectRateConfig{{Project: "p1", Fraction: "1.0"}},
	}

	emp, err := ec.Compensation()
	require.NoError(t, err)
	assert.Equal(t, "5000", emp.GrossPay.String())
	assert.Equal(t, "0.2", emp.PAYERate.String())
	assert.True(t, emp.OtherTaxesRate.IsZero(), "omitted rates default to zero")
	require.Len(t, emp.ProjectRates, 1)
	assert.Equal(t, "1", emp.ProjectRates[0].Fraction.String())
}

func TestEmployeeCompensation_BadAmount(t *testing.T) {
	ec := EmployeeConfig{ID: "e1", GrossPay: "lots"}
	_, err := ec.Compensation()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gross_pay")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
