package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

func TestCompute(t *testing.T) {
	totals := Compute(
		[]records.Income{
			{Amount: 500, Type: "تبرع"},
			{Amount: 250.5},
		},
		[]records.Expense{{Amount: 100}, {Amount: 50.25}},
	)

	assert.InDelta(t, 750.5, totals.Income, 1e-9)
	assert.InDelta(t, 150.25, totals.Expenses, 1e-9)
	assert.InDelta(t, 600.25, totals.Balance, 1e-9)
	assert.InDelta(t, 250.5, totals.ByType[DefaultIncomeType], 1e-9)
	assert.InDelta(t, 500, totals.ByType["تبرع"], 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	totals := Compute(nil, nil)
	assert.Zero(t, totals.Balance)
	assert.Empty(t, totals.ByType)
}
