// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single spending record as returned by a transaction source.
// Transactions are read-only input to the report engine.
type Transaction struct {
	Description string          `json:"description" csv:"description"`
	Amount      decimal.Decimal `json:"amount" csv:"amount"`
	Date        time.Time       `json:"-" csv:"-"`
}

// NewTransaction builds a transaction from a float amount, which is how the
// upstream GraphQL API reports it.
func NewTransaction(description string, amount float64) Transaction {
	return Transaction{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
	}
}

// TransactionQuery selects the transactions of one user, optionally bounded by
// start and end dates in DD/MM/YYYY form. Dates are kept verbatim; sources
// interpret them.
type TransactionQuery struct {
	Username  string `json:"user"`
	StartDate string `json:"start,omitempty"`
	EndDate   string `json:"end,omitempty"`
}

// ParseAmount parses a string amount to decimal.Decimal.
// Comma decimal separators, spaces and thousand separators are tolerated.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")
	amount = strings.ReplaceAll(amount, ",", ".")
	return decimal.NewFromString(amount)
}

// SumAmounts returns the exact sum of the amounts of the given transactions.
func SumAmounts(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}
