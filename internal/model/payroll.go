package model

import "github.com/shopspring/decimal"

// ProjectRate allocates a fraction of an employee's gross pay to a project
// for cost tracking. Fractions across an employee must sum to 1.0.
type ProjectRate struct {
	Project  string
	Fraction decimal.Decimal
}

// EmployeeCompensation is the payroll configuration for one employee.
// All *Rate fields are fractions of GrossPay in [0,1]; AdvanceLoan is a
// flat deduction. ExemptionRate is carried as configuration but is not
// currently applied in the net-pay computation.
type EmployeeCompensation struct {
	ID                  string
	Name                string
	GrossPay            decimal.Decimal
	ExemptionRate       decimal.Decimal
	EmployeePensionRate decimal.Decimal
	EmployerPensionRate decimal.Decimal
	OtherDeductionRate  decimal.Decimal
	PAYERate            decimal.Decimal
	OtherTaxesRate      decimal.Decimal
	AdvanceLoan         decimal.Decimal
	ProjectRates        []ProjectRate
}

// PayrollAccountMap names the five accounts a payroll run posts against.
// Every field is required before a batch can run.
type PayrollAccountMap struct {
	CashAccount            string `yaml:"cash_account"`
	PAYEAccount            string `yaml:"paye_account"`
	PensionAccount         string `yaml:"pension_account"`
	OtherDeductionsAccount string `yaml:"other_deductions_account"`
	ExpenseAccount         string `yaml:"expense_account"`
}
