// Package payroll turns employee compensation configuration into net/gross
// figures and a balanced journal entry.
package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantbooks-dev/grantbooks/internal/model"
)

// rateSumTolerance bounds how far project-rate fractions may drift from 1.0.
var rateSumTolerance = decimal.RequireFromString("0.001")

var one = decimal.NewFromInt(1)

// Result holds the computed pay figures for one employee.
type Result struct {
	GrossPay          decimal.Decimal
	PAYE              decimal.Decimal
	Pension           decimal.Decimal
	OtherDeductions   decimal.Decimal
	AdvanceLoan       decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
	EmployerPension   decimal.Decimal
	OtherTaxes        decimal.Decimal
	TotalEmployerCost decimal.Decimal
}

// Compute applies the employee's rates to gross pay. All rates are
// fractions of gross; the advance/loan deduction is flat. The exemption
// rate is carried in configuration but not applied here.
func Compute(emp model.EmployeeCompensation) Result {
	gross := emp.GrossPay
	paye := gross.Mul(emp.PAYERate)
	pension := gross.Mul(emp.EmployeePensionRate)
	other := gross.Mul(emp.OtherDeductionRate)
	totalDeductions := paye.Add(pension).Add(other).Add(emp.AdvanceLoan)

	employerPension := gross.Mul(emp.EmployerPensionRate)
	otherTaxes := gross.Mul(emp.OtherTaxesRate)

	return Result{
		GrossPay:          gross,
		PAYE:              paye,
		Pension:           pension,
		OtherDeductions:   other,
		AdvanceLoan:       emp.AdvanceLoan,
		TotalDeductions:   totalDeductions,
		NetPay:            gross.Sub(totalDeductions),
		EmployerPension:   employerPension,
		OtherTaxes:        otherTaxes,
		TotalEmployerCost: gross.Add(employerPension).Add(otherTaxes),
	}
}

// RateSumError reports project-rate fractions that do not sum to 1.0.
type RateSumError struct {
	EmployeeID string
	Sum        decimal.Decimal
}

func (e RateSumError) Error() string {
	return fmt.Sprintf("employee %s: project rate fractions must sum to 1.0, got %s", e.EmployeeID, e.Sum)
}

// ValidateProjectRates checks that an employee's project-rate fractions
// sum to 1.0 within tolerance. An employee with no project rates is valid
// and simply gets no project allocation.
func ValidateProjectRates(emp model.EmployeeCompensation) error {
	if len(emp.ProjectRates) == 0 {
		return nil
	}

	sum := decimal.Zero
	for _, r := range emp.ProjectRates {
		sum = sum.Add(r.Fraction)
	}
	if sum.Sub(one).Abs().GreaterThan(rateSumTolerance) {
		return RateSumError{EmployeeID: emp.ID, Sum: sum}
	}
	return nil
}

// AllocateProjects produces one expense posting per project rate,
// attributing grossPay * fraction of the employee's cost to the project.
// These postings are advisory cost allocations against the payroll expense
// account, separate from the balanced journal entry.
func AllocateProjects(emp model.EmployeeCompensation, expenseAccount string, newID func() string, date time.Time) []model.Posting {
	var postings []model.Posting
	for _, r := range emp.ProjectRates {
		postings = append(postings, model.Posting{
			ID:          newID(),
			Date:        date,
			Description: fmt.Sprintf("Payroll allocation: %s", emp.Name),
			AccountCode: expenseAccount,
			Kind:        model.KindExpense,
			Amount:      emp.GrossPay.Mul(r.Fraction),
			Project:     r.Project,
		})
	}
	return postings
}
