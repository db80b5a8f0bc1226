// Package report turns a user's transactions into per-category spending totals.
package report

import (
	"context"
	"strings"
	"time"

	"fjacquet/expense-report/internal/batch"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/reporterror"
	"fjacquet/expense-report/internal/source"
)

// Resolver labels every transaction of a list. *batch.Dispatcher implements it.
type Resolver interface {
	ResolveAll(ctx context.Context, transactions []models.Transaction) ([]models.LabeledAmount, error)
}

// Generator produces spending reports.
type Generator struct {
	source   source.TransactionSource
	resolver Resolver
	logger   logging.Logger
}

// NewGenerator creates a report generator reading from src and labelling with resolver.
func NewGenerator(src source.TransactionSource, resolver Resolver, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Generator{
		source:   src,
		resolver: resolver,
		logger:   logger.WithFields(logging.Component("report")),
	}
}

// GenerateReport fetches the transactions of username between the optional
// DD/MM/YYYY bounds, classifies them and returns the amount spent per category.
//
// A blank username fails with an error matching reporterror.ErrInvalidArgument
// before anything else happens. Source failures are wrapped in
// *reporterror.UpstreamFetchError; classification failures are returned as the
// resolver reported them. No partial report is ever returned.
func (g *Generator) GenerateReport(ctx context.Context, username, startDate, endDate string) (models.CategoryTotals, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &reporterror.InvalidArgumentError{Field: "username", Reason: "must not be empty"}
	}

	started := time.Now()
	logger := g.logger.WithFields(
		logging.Field{Key: logging.FieldUser, Value: username},
		logging.Field{Key: logging.FieldStartDate, Value: startDate},
		logging.Field{Key: logging.FieldEndDate, Value: endDate},
	)

	transactions, err := g.source.Transactions(ctx, models.TransactionQuery{
		Username:  username,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to fetch transactions")
		return nil, &reporterror.UpstreamFetchError{Username: username, Err: err}
	}

	labeled, err := g.resolver.ResolveAll(ctx, transactions)
	if err != nil {
		logger.WithError(err).Warn("Failed to classify transactions")
		return nil, err
	}

	totals := batch.Aggregate(labeled)
	logger.Info("Report generated",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(started).Milliseconds()})
	return totals, nil
}
