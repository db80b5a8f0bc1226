package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
)

// RuleLoader supplies the keyword rules of a KeywordClassifier.
type RuleLoader interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

// KeywordClassifier implements Client with case-insensitive keyword matching.
// Rules are evaluated in file order; the first matching keyword wins.
type KeywordClassifier struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordClassifier loads the rules once from loader.
func NewKeywordClassifier(loader RuleLoader, logger logging.Logger) (*KeywordClassifier, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	categories, err := loader.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword rules: %w", err)
	}
	return &KeywordClassifier{
		categories: categories,
		logger:     logger,
	}, nil
}

// Classify returns the category of the first keyword contained in description.
func (k *KeywordClassifier) Classify(ctx context.Context, description string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(description) == "" {
		return "", nil
	}

	upper := strings.ToUpper(description)
	for _, category := range k.categories {
		for _, keyword := range category.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(upper, strings.ToUpper(keyword)) {
				k.logger.Debug("Transaction classified using keyword matching",
					logging.Field{Key: logging.FieldDescription, Value: description},
					logging.Field{Key: logging.FieldKeyword, Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: category.Name})
				return category.Name, nil
			}
		}
	}
	return "", nil
}

// Categories returns the names of every category that has rules.
func (k *KeywordClassifier) Categories() []string {
	names := make([]string, 0, len(k.categories))
	for _, category := range k.categories {
		names = append(names, category.Name)
	}
	return names
}
