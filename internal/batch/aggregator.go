package batch

import (
	"fjacquet/expense-report/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregate folds labeled amounts into per-category totals.
//
// The result is a fresh mapping holding only labels present in entries.
// Amounts are exact decimals, so the result does not depend on the order
// of entries and the sum of the totals always equals the sum of the inputs.
func Aggregate(entries []models.LabeledAmount) models.CategoryTotals {
	totals := make(models.CategoryTotals)
	for _, entry := range entries {
		total, ok := totals[entry.Label]
		if !ok {
			total = decimal.Zero
		}
		totals[entry.Label] = total.Add(entry.Amount)
	}
	return totals
}
