package source

import (
	"context"
	"database/sql"
	"fmt"

	"fjacquet/expense-report/internal/dateutils"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Dates are stored as ISO text so that lexical order is chronological.
// Amounts are stored as text to keep them exact.
const createTransactionsSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(username, date);
`

// SQLiteSource reads transactions from a SQLite database.
type SQLiteSource struct {
	db     *sql.DB
	logger logging.Logger
}

// OpenSQLiteSource opens (or creates) the database at dataSourceName and
// makes sure the transactions table exists.
func OpenSQLiteSource(dataSourceName string, logger logging.Logger) (*SQLiteSource, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if _, err := db.Exec(createTransactionsSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create transactions table: %w", err)
	}
	return &SQLiteSource{db: db, logger: logger}, nil
}

// Close releases the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Insert stores records in a single transaction.
func (s *SQLiteSource) Insert(ctx context.Context, records ...Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (username, description, amount, date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(dateutils.DateLayoutISO)
		}
		if _, err := stmt.ExecContext(ctx, r.Username, r.Description, r.Amount.String(), date); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert transaction %q: %w", r.Description, err)
		}
	}
	return tx.Commit()
}

// Transactions implements TransactionSource.
func (s *SQLiteSource) Transactions(ctx context.Context, query models.TransactionQuery) ([]models.Transaction, error) {
	dateRange, err := parseRange(query)
	if err != nil {
		return nil, err
	}

	stmt := `SELECT description, amount, date FROM transactions WHERE username = ?`
	args := []interface{}{query.Username}
	if !dateRange.Start.IsZero() {
		stmt += ` AND date != '' AND date >= ?`
		args = append(args, dateRange.Start.Format(dateutils.DateLayoutISO))
	}
	if !dateRange.End.IsZero() {
		stmt += ` AND date != '' AND date <= ?`
		args = append(args, dateRange.End.Format(dateutils.DateLayoutISO))
	}
	stmt += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var description, amount, date string
		if err := rows.Scan(&description, &amount, &date); err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for %q: %w", amount, description, err)
		}
		tx := models.Transaction{Description: description, Amount: value}
		if date != "" {
			if tx.Date, err = dateutils.ParseDate(date); err != nil {
				return nil, err
			}
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched transactions",
		logging.Field{Key: logging.FieldSource, Value: "sqlite"},
		logging.Field{Key: logging.FieldUser, Value: query.Username},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}
