// Package source provides the transaction sources the report generator reads from.
package source

import (
	"context"
	"time"

	"fjacquet/expense-report/internal/dateutils"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/reporterror"

	"github.com/shopspring/decimal"
)

// TransactionSource returns the transactions of one user, optionally bounded
// by a DD/MM/YYYY date range. Validating the dates is the source's job.
type TransactionSource interface {
	Transactions(ctx context.Context, query models.TransactionQuery) ([]models.Transaction, error)
}

// Record is a stored transaction owned by a user.
type Record struct {
	Username    string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// Transaction drops the owner.
func (r Record) Transaction() models.Transaction {
	return models.Transaction{
		Description: r.Description,
		Amount:      r.Amount,
		Date:        r.Date,
	}
}

// parseRange reads the query bounds. Malformed dates are the caller's fault
// and reported as invalid arguments.
func parseRange(query models.TransactionQuery) (dateutils.Range, error) {
	dateRange, err := dateutils.ParseRange(query.StartDate, query.EndDate)
	if err != nil {
		return dateutils.Range{}, &reporterror.InvalidArgumentError{Field: "date range", Reason: err.Error()}
	}
	return dateRange, nil
}

// filterRecords returns the records of query.Username inside the query's range.
// Undated records only match an open range.
func filterRecords(records []Record, query models.TransactionQuery) ([]models.Transaction, error) {
	dateRange, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	bounded := !dateRange.Start.IsZero() || !dateRange.End.IsZero()

	out := make([]models.Transaction, 0)
	for _, r := range records {
		if r.Username != query.Username {
			continue
		}
		if bounded && (r.Date.IsZero() || !dateRange.Contains(r.Date)) {
			continue
		}
		out = append(out, r.Transaction())
	}
	return out, nil
}
