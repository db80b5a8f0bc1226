package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategoryEatingOut, Keywords: []string{"coffee", "restaurant"}},
		{Name: models.CategoryVacation, Keywords: []string{"flight", "hotel"}},
		{Name: models.CategoryPublicTransportation, Keywords: []string{"", "metro"}},
	}
}

func TestKeywordClassifier_Classify(t *testing.T) {
	logger := logging.NewMockLogger()
	classifier, err := NewKeywordClassifier(&store.MockRuleStore{Categories: testRules()}, logger)
	require.NoError(t, err)

	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{name: "keyword match", description: "Morning coffee", expected: models.CategoryEatingOut},
		{name: "case insensitive", description: "FLIGHT TLV-LON", expected: models.CategoryVacation},
		{name: "first rule wins", description: "hotel restaurant", expected: models.CategoryEatingOut},
		{name: "empty keyword ignored", description: "metro card", expected: models.CategoryPublicTransportation},
		{name: "no match", description: "dentist", expected: ""},
		{name: "blank description", description: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := classifier.Classify(context.Background(), tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, label)
		})
	}

	assert.NotEmpty(t, logger.GetEntriesByLevel("DEBUG"))
}

func TestKeywordClassifier_Categories(t *testing.T) {
	classifier, err := NewKeywordClassifier(&store.MockRuleStore{Categories: testRules()}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		models.CategoryEatingOut,
		models.CategoryVacation,
		models.CategoryPublicTransportation,
	}, classifier.Categories())
}

func TestKeywordClassifier_LoadError(t *testing.T) {
	loadErr := errors.New("disk on fire")
	_, err := NewKeywordClassifier(&store.MockRuleStore{LoadCategoriesError: loadErr}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
}

func TestKeywordClassifier_CanceledContext(t *testing.T) {
	classifier, err := NewKeywordClassifier(&store.MockRuleStore{Categories: testRules()}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = classifier.Classify(ctx, "coffee")
	assert.ErrorIs(t, err, context.Canceled)
}
