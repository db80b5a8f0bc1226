package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotals maps a category label to the accumulated amount spent in it.
type CategoryTotals map[string]decimal.Decimal

// Sum returns the total across every category.
func (t CategoryTotals) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range t {
		total = total.Add(amount)
	}
	return total
}

// Labels returns the category labels in lexical order.
func (t CategoryTotals) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Floats converts the totals to plain numbers, the shape served to HTTP
// clients of the original API.
func (t CategoryTotals) Floats() map[string]float64 {
	out := make(map[string]float64, len(t))
	for label, amount := range t {
		out[label] = amount.InexactFloat64()
	}
	return out
}

// Equal reports whether both mappings hold the same labels with equal amounts.
func (t CategoryTotals) Equal(other CategoryTotals) bool {
	if len(t) != len(other) {
		return false
	}
	for label, amount := range t {
		o, ok := other[label]
		if !ok || !o.Equal(amount) {
			return false
		}
	}
	return true
}
