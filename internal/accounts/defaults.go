package accounts

import "github.com/grantbooks-dev/grantbooks/internal/model"

// DefaultChart returns the default chart of accounts for a nonprofit
// organization.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1000", Name: "Assets", Category: model.CategoryAsset, Placeholder: true},
		{Code: "1010", Name: "Operating Checking", Category: model.CategoryAsset, Type: "bank", ParentCode: "1000", Description: "Primary checking account"},
		{Code: "1020", Name: "Savings", Category: model.CategoryAsset, Type: "bank", ParentCode: "1000"},
		{Code: "1200", Name: "Grants Receivable", Category: model.CategoryAsset, Type: "receivable", ParentCode: "1000", Description: "Awarded but unpaid grants"},
		{Code: "1300", Name: "Staff Advances", Category: model.CategoryAsset, Type: "receivable", ParentCode: "1000", Description: "Salary advances and loans to staff"},
		{Code: "2000", Name: "Liabilities", Category: model.CategoryLiability, Placeholder: true},
		{Code: "2100", Name: "Accounts Payable", Category: model.CategoryLiability, ParentCode: "2000"},
		{Code: "2200", Name: "PAYE Payable", Category: model.CategoryLiability, Type: "payroll", ParentCode: "2000", Description: "Income tax withheld, due to revenue authority"},
		{Code: "2210", Name: "Pension Payable", Category: model.CategoryLiability, Type: "payroll", ParentCode: "2000", Description: "Employee and employer pension contributions"},
		{Code: "2220", Name: "Other Payroll Deductions", Category: model.CategoryLiability, Type: "payroll", ParentCode: "2000"},
		{Code: "3000", Name: "Net Assets", Category: model.CategoryNetAsset, Placeholder: true},
		{Code: "3010", Name: "Unrestricted Net Assets", Category: model.CategoryNetAsset, ParentCode: "3000"},
		{Code: "3020", Name: "Restricted Net Assets", Category: model.CategoryNetAsset, ParentCode: "3000", Description: "Donor-restricted funds"},
		{Code: "4000", Name: "Revenue", Category: model.CategoryRevenue, Placeholder: true},
		{Code: "4010", Name: "Grant Revenue", Category: model.CategoryRevenue, ParentCode: "4000"},
		{Code: "4020", Name: "Donations", Category: model.CategoryRevenue, ParentCode: "4000"},
		{Code: "5000", Name: "Expenses", Category: model.CategoryExpense, Placeholder: true},
		{Code: "5010", Name: "Program Expenses", Category: model.CategoryExpense, ParentCode: "5000"},
		{Code: "5100", Name: "Salaries & Payroll", Category: model.CategoryExpense, Type: "payroll", ParentCode: "5000", Description: "Gross pay plus employer costs"},
		{Code: "5200", Name: "Office & Administration", Category: model.CategoryExpense, ParentCode: "5000"},
		{Code: "5300", Name: "Professional Services", Category: model.CategoryExpense, ParentCode: "5000"},
	}
}
