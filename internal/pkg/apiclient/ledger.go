package apiclient

import (
	"context"
	"net/http"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// IncomeInput is the body for recording received funds
type IncomeInput struct {
	Source string  `json:"source"`
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// ExpenseInput is the body for recording spent funds
type ExpenseInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

// ListIncome returns every income ledger entry
func (c *Client) ListIncome(ctx context.Context) ([]records.Income, error) {
	var income []records.Income
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/imports"}, &income); err != nil {
		return nil, err
	}
	return income, nil
}

// CreateIncome records received funds
func (c *Client) CreateIncome(ctx context.Context, in IncomeInput) (*records.Income, error) {
	var income records.Income
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/imports", body: in}, &income); err != nil {
		return nil, err
	}
	return &income, nil
}

// ListExpenses returns every expense ledger entry
func (c *Client) ListExpenses(ctx context.Context) ([]records.Expense, error) {
	var expenses []records.Expense
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/exports"}, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense records spent funds
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*records.Expense, error) {
	var expense records.Expense
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/exports", body: in}, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}
