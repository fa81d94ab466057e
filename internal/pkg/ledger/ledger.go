// Package ledger computes the organisation's income and expense totals.
package ledger

import "github.com/alfurqan/aidctl/internal/pkg/records"

// DefaultIncomeType is used when an income entry has no type
const DefaultIncomeType = "مساعدات نقدية"

// Totals is the ledger balance sheet
type Totals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	// ByType sums income per income type
	ByType map[string]float64 `json:"by_type,omitempty"`
}

// Compute sums income and expenses
func Compute(income []records.Income, expenses []records.Expense) Totals {
	t := Totals{ByType: make(map[string]float64)}
	for _, i := range income {
		t.Income += i.Amount
		typ := i.Type
		if typ == "" {
			typ = DefaultIncomeType
		}
		t.ByType[typ] += i.Amount
	}
	for _, e := range expenses {
		t.Expenses += e.Amount
	}
	t.Balance = t.Income - t.Expenses
	return t
}
