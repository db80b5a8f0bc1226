package store

import (
	"fjacquet/expense-report/internal/models"
)

// MockRuleStore is a mock implementation of RuleStore for testing.
type MockRuleStore struct {
	Categories          []models.CategoryConfig
	LoadCategoriesError error
}

// LoadCategories returns the mock categories.
func (m *MockRuleStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}
