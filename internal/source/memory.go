package source

import (
	"context"
	"sync"

	"fjacquet/expense-report/internal/models"
)

// MemorySource serves transactions from an in-process list.
type MemorySource struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemorySource creates a source holding records.
func NewMemorySource(records ...Record) *MemorySource {
	return &MemorySource{records: append([]Record(nil), records...)}
}

// Add appends records.
func (s *MemorySource) Add(records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Transactions implements TransactionSource.
func (s *MemorySource) Transactions(ctx context.Context, query models.TransactionQuery) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRecords(s.records, query)
}
