package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/id"
	"github.com/grantbooks-dev/grantbooks/internal/journal"
	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// ConfigError reports payroll account configuration that blocks a batch.
type ConfigError struct {
	Role    string
	Code    string
	Missing bool
}

func (e ConfigError) Error() string {
	if e.Missing {
		return fmt.Sprintf("payroll account map: %s is not configured", e.Role)
	}
	return fmt.Sprintf("payroll account map: %s references unknown account %s", e.Role, e.Code)
}

// checkAccountMap verifies that all five target accounts are configured
// and exist in the chart. The first problem found is returned; a batch
// never partially runs.
func checkAccountMap(m model.PayrollAccountMap, accounts journal.AccountChecker) error {
	roles := []struct {
		role string
		code string
	}{
		{"cash account", m.CashAccount},
		{"PAYE liability account", m.PAYEAccount},
		{"pension liability account", m.PensionAccount},
		{"other-deductions liability account", m.OtherDeductionsAccount},
		{"payroll expense account", m.ExpenseAccount},
	}
	for _, r := range roles {
		if r.code == "" {
			return ConfigError{Role: r.role, Missing: true}
		}
		if !accounts.Exists(r.code) {
			return ConfigError{Role: r.role, Code: r.code}
		}
	}
	return nil
}

// RunBatch computes pay for every employee and aggregates the results
// into one balanced journal entry dated at date, plus the advisory
// per-project allocation postings. All five accounts in accountMap must
// be configured and known, and every employee's project rates must
// validate, before anything is produced. The returned entry has no ID;
// the caller's journal service assigns one when the entry is committed.
// Allocation postings are informational: failing to persist them must not
// roll back the journal entry.
func RunBatch(employees []model.EmployeeCompensation, date time.Time, accountMap model.PayrollAccountMap, accounts journal.AccountChecker) (model.JournalEntry, []model.Posting, error) {
	if err := checkAccountMap(accountMap, accounts); err != nil {
		return model.JournalEntry{}, nil, err
	}
	if len(employees) == 0 {
		return model.JournalEntry{}, nil, fmt.Errorf("payroll batch has no employees")
	}
	for _, emp := range employees {
		if err := ValidateProjectRates(emp); err != nil {
			return model.JournalEntry{}, nil, err
		}
	}

	totalGross := decimal.Zero
	totalPAYE := decimal.Zero
	totalEmployeePension := decimal.Zero
	totalEmployerPension := decimal.Zero
	totalOtherDeductions := decimal.Zero
	totalOtherTaxes := decimal.Zero
	totalAdvances := decimal.Zero
	totalNet := decimal.Zero

	var allocations []model.Posting
	for _, emp := range employees {
		r := Compute(emp)
		totalGross = totalGross.Add(r.GrossPay)
		totalPAYE = totalPAYE.Add(r.PAYE)
		totalEmployeePension = totalEmployeePension.Add(r.Pension)
		totalEmployerPension = totalEmployerPension.Add(r.EmployerPension)
		totalOtherDeductions = totalOtherDeductions.Add(r.OtherDeductions)
		totalOtherTaxes = totalOtherTaxes.Add(r.OtherTaxes)
		totalAdvances = totalAdvances.Add(r.AdvanceLoan)
		totalNet = totalNet.Add(r.NetPay)

		allocations = append(allocations, AllocateProjects(emp, accountMap.ExpenseAccount, id.NewPostingID, date)...)
	}

	// One expense debit for the full employer cost, credits for where the
	// money goes. Employee and employer pension share one liability line;
	// other deductions and other employer taxes share another. Advances
	// recovered from pay reduce the other-deductions liability and only
	// appear when nonzero.
	entry := model.JournalEntry{
		Date:      date,
		Reference: fmt.Sprintf("PR-%s", date.Format("2006-01")),
		Memo:      fmt.Sprintf("Payroll %s (%d employees)", date.Format("January 2006"), len(employees)),
		Lines: []model.JournalLine{
			{AccountCode: accountMap.ExpenseAccount, Debit: totalGross.Add(totalEmployerPension).Add(totalOtherTaxes)},
			{AccountCode: accountMap.CashAccount, Credit: totalNet},
			{AccountCode: accountMap.PAYEAccount, Credit: totalPAYE},
			{AccountCode: accountMap.PensionAccount, Credit: totalEmployeePension.Add(totalEmployerPension)},
			{AccountCode: accountMap.OtherDeductionsAccount, Credit: totalOtherDeductions.Add(totalOtherTaxes)},
		},
	}
	if !totalAdvances.IsZero() {
		entry.Lines = append(entry.Lines, model.JournalLine{
			AccountCode: accountMap.OtherDeductionsAccount,
			Credit:      totalAdvances,
		})
	}

	if balanced, totalDebit, totalCredit := journal.Validate(entry.Lines); !balanced {
		return model.JournalEntry{}, nil, fmt.Errorf(
			"payroll entry does not balance: debit total %s, credit total %s",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}

	return entry, allocations, nil
}
