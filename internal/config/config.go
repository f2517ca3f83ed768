package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// Config represents the top-level grantbooks.yaml configuration.
type Config struct {
	Organization   OrganizationConfig   `yaml:"organization"`
	Fiscal         FiscalConfig         `yaml:"fiscal"`
	Projects       []string             `yaml:"projects,omitempty"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Payroll        PayrollConfig        `yaml:"payroll"`
	Git            GitConfig            `yaml:"git"`
}

// OrganizationConfig identifies the organization the books belong to.
type OrganizationConfig struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// ReconciliationConfig carries the matcher defaults.
type ReconciliationConfig struct {
	WindowDays    int    `yaml:"window_days"`
	AmountEpsilon string `yaml:"amount_epsilon"` // decimal string, e.g. "0.01"
}

// Epsilon parses the configured amount tolerance.
func (r ReconciliationConfig) Epsilon() (decimal.Decimal, error) {
	eps, err := decimal.NewFromString(r.AmountEpsilon)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount_epsilon %q: %w", r.AmountEpsilon, err)
	}
	return eps, nil
}

// PayrollConfig holds the account map and per-employee compensation.
type PayrollConfig struct {
	Accounts  model.PayrollAccountMap `yaml:"accounts"`
	Employees []EmployeeConfig        `yaml:"employees,omitempty"`
}

// EmployeeConfig is the YAML shape of one employee's compensation. All
// money and rate fields are decimal strings so nothing passes through
// binary floating point.
type EmployeeConfig struct {
	ID                  string              `yaml:"id"`
	Name                string              `yaml:"name"`
	GrossPay            string              `yaml:"gross_pay"`
	ExemptionRate       string              `yaml:"exemption_rate,omitempty"`
	EmployeePensionRate string              `yaml:"employee_pension_rate,omitempty"`
	EmployerPensionRate string              `yaml:"employer_pension_rate,omitempty"`
	OtherDeductionRate  string              `yaml:"other_deduction_rate,omitempty"`
	PAYERate            string              `yaml:"paye_rate,omitempty"`
	OtherTaxesRate      string              `yaml:"other_taxes_rate,omitempty"`
	AdvanceLoan         string              `yaml:"advance_loan,omitempty"`
	ProjectRates        []ProjectRateConfig `yaml:"project_rates,omitempty"`
}

// ProjectRateConfig is the YAML shape of one project allocation fraction.
type ProjectRateConfig struct {
	Project  string `yaml:"project"`
	Fraction string `yaml:"fraction"`
}

// Compensation converts the YAML shape into a typed record, parsing every
// amount strictly.
func (e EmployeeConfig) Compensation() (model.EmployeeCompensation, error) {
	emp := model.EmployeeCompensation{ID: e.ID, Name: e.Name}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"gross_pay", e.GrossPay, &emp.GrossPay},
		{"exemption_rate", e.ExemptionRate, &emp.ExemptionRate},
		{"employee_pension_rate", e.EmployeePensionRate, &emp.EmployeePensionRate},
		{"employer_pension_rate", e.EmployerPensionRate, &emp.EmployerPensionRate},
		{"other_deduction_rate", e.OtherDeductionRate, &emp.OtherDeductionRate},
		{"paye_rate", e.PAYERate, &emp.PAYERate},
		{"other_taxes_rate", e.OtherTaxesRate, &emp.OtherTaxesRate},
		{"advance_loan", e.AdvanceLoan, &emp.AdvanceLoan},
	}
	for _, f := range fields {
		if f.raw == "" {
			*f.dst = decimal.Zero
			continue
		}
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return model.EmployeeCompensation{}, fmt.Errorf("employee %s: parsing %s %q: %w", e.ID, f.name, f.raw, err)
		}
		*f.dst = v
	}

	for _, pr := range e.ProjectRates {
		fraction, err := decimal.NewFromString(pr.Fraction)
		if err != nil {
			return model.EmployeeCompensation{}, fmt.Errorf("employee %s: parsing fraction %q for project %s: %w", e.ID, pr.Fraction, pr.Project, err)
		}
		emp.ProjectRates = append(emp.ProjectRates, model.ProjectRate{Project: pr.Project, Fraction: fraction})
	}

	return emp, nil
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a grantbooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new organization.
func Default(orgName string) *Config {
	return &Config{
		Organization: OrganizationConfig{Name: orgName},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Reconciliation: ReconciliationConfig{
			WindowDays:    3,
			AmountEpsilon: "0.01",
		},
		Payroll: PayrollConfig{
			Accounts: model.PayrollAccountMap{
				CashAccount:            "1010",
				PAYEAccount:            "2200",
				PensionAccount:         "2210",
				OtherDeductionsAccount: "2220",
				ExpenseAccount:         "5100",
			},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "GrantBooks",
			AuthorEmail: "books@grantbooks.dev",
		},
	}
}
