package accounts

import "github.com/cleared-dev/synthbooks/internal/model"

// Classifications used by the default chart.
const (
	ClassCurrent         = "Current"
	ClassNonCurrent      = "Non-current"
	ClassCapital         = "Capital"
	ClassRetainedResults = "Retained earnings"
	ClassOperating       = "Operating"
	ClassNonOperating    = "Non-operating"
)

// DefaultChart returns the chart of accounts used for generated datasets.
// It contains every account name the journal engine resolves by default.
func DefaultChart() []model.Account {
	const (
		asset     = model.AccountTypeAsset
		liability = model.AccountTypeLiability
		equity    = model.AccountTypeEquity
		income    = model.AccountTypeIncome
		expense   = model.AccountTypeExpense
	)
	return []model.Account{
		{ID: "1001", Name: "Cash", Type: asset, Classification: ClassCurrent},
		{ID: "1002", Name: "Bank", Type: asset, Classification: ClassCurrent},
		{ID: "1003", Name: "Short-Term Investments", Type: asset, Classification: ClassCurrent},
		{ID: "1004", Name: "Accounts Receivable", Type: asset, Classification: ClassCurrent},
		{ID: "1005", Name: "Inventory", Type: asset, Classification: ClassCurrent},
		{ID: "1006", Name: "VAT Receivable", Type: asset, Classification: ClassCurrent},
		{ID: "1007", Name: "Supplier Advances", Type: asset, Classification: ClassCurrent},

		{ID: "1101", Name: "Land", Type: asset, Classification: ClassNonCurrent},
		{ID: "1102", Name: "Buildings", Type: asset, Classification: ClassNonCurrent},
		{ID: "1103", Name: "Machinery and Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1104", Name: "Transportation Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1105", Name: "Computer Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1106", Name: "Office Furniture and Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1107", Name: "Accumulated Depreciation - Buildings", Type: asset, Classification: ClassNonCurrent},
		{ID: "1108", Name: "Accumulated Depreciation - Machinery and Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1109", Name: "Accumulated Depreciation - Transportation Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1110", Name: "Accumulated Depreciation - Computer Equipment", Type: asset, Classification: ClassNonCurrent},
		{ID: "1111", Name: "Accumulated Depreciation - Office Furniture and Equipment", Type: asset, Classification: ClassNonCurrent},

		{ID: "2001", Name: "Accounts Payable", Type: liability, Classification: ClassCurrent},
		{ID: "2002", Name: "Sundry Creditors", Type: liability, Classification: ClassCurrent},
		{ID: "2003", Name: "Short-Term Notes Payable", Type: liability, Classification: ClassCurrent},
		{ID: "2004", Name: "VAT Payable", Type: liability, Classification: ClassCurrent},
		{ID: "2005", Name: "Income Tax Payable", Type: liability, Classification: ClassCurrent},
		{ID: "2006", Name: "Customer Advances", Type: liability, Classification: ClassCurrent},
		{ID: "2101", Name: "Long-Term Bank Loans", Type: liability, Classification: ClassNonCurrent},
		{ID: "2102", Name: "Long-Term Notes Payable", Type: liability, Classification: ClassNonCurrent},

		{ID: "3001", Name: "Share Capital", Type: equity, Classification: ClassCapital},
		{ID: "3002", Name: "Legal Reserve", Type: equity, Classification: ClassCapital},
		{ID: "3003", Name: "Retained Earnings", Type: equity, Classification: ClassRetainedResults},
		{ID: "3004", Name: "Net Income for the Year", Type: equity, Classification: ClassRetainedResults},
		{ID: "3005", Name: "Accumulated Losses", Type: equity, Classification: ClassRetainedResults},

		{ID: "4001", Name: "Sales Revenue", Type: income, Classification: ClassOperating},
		{ID: "4002", Name: "Sales Returns", Type: income, Classification: ClassOperating},
		{ID: "4003", Name: "Sales Discounts", Type: income, Classification: ClassOperating},
		{ID: "4004", Name: "Financial Income", Type: income, Classification: ClassNonOperating},
		{ID: "4005", Name: "Other Income", Type: income, Classification: ClassNonOperating},

		{ID: "5001", Name: "Cost of Goods Sold", Type: expense, Classification: ClassOperating},
		{ID: "5002", Name: "Purchases", Type: expense, Classification: ClassOperating},
		{ID: "5003", Name: "Purchase Returns", Type: expense, Classification: ClassOperating},
		{ID: "5004", Name: "Purchase Discounts", Type: expense, Classification: ClassOperating},
		{ID: "5005", Name: "Administrative Expenses", Type: expense, Classification: ClassOperating},
		{ID: "5006", Name: "Selling Expenses", Type: expense, Classification: ClassOperating},
		{ID: "5007", Name: "Financial Expenses", Type: expense, Classification: ClassNonOperating},
		{ID: "5008", Name: "Other Expenses", Type: expense, Classification: ClassNonOperating},
	}
}
