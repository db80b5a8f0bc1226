package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"fjacquet/expense-report/internal/dateutils"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"

	"github.com/gocarina/gocsv"
)

// CSVRow is one line of a transactions export.
type CSVRow struct {
	Username    string `csv:"username"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
}

// CSVSource reads transactions from a CSV file with the columns
// username,date,description,amount. The file is read on every query.
type CSVSource struct {
	path   string
	logger logging.Logger
}

// NewCSVSource creates a source backed by the file at path.
func NewCSVSource(path string, logger logging.Logger) *CSVSource {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CSVSource{path: path, logger: logger}
}

// Transactions implements TransactionSource.
func (s *CSVSource) Transactions(ctx context.Context, query models.TransactionQuery) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := LoadCSVRecords(s.path, s.logger)
	if err != nil {
		return nil, err
	}
	transactions, err := filterRecords(records, query)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Fetched transactions",
		logging.Field{Key: logging.FieldSource, Value: "csv"},
		logging.Field{Key: logging.FieldUser, Value: query.Username},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

// LoadCSVRecords reads every row of the CSV file at path. Rows with an
// empty date are kept undated.
func LoadCSVRecords(path string, logger logging.Logger) ([]Record, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	var rows []CSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		amount, err := models.ParseAmount(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q: %w", i+1, row.Amount, err)
		}
		record := Record{
			Username:    strings.TrimSpace(row.Username),
			Description: row.Description,
			Amount:      amount,
		}
		if strings.TrimSpace(row.Date) != "" {
			if record.Date, err = dateutils.ParseDate(row.Date); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		records = append(records, record)
	}
	return records, nil
}
