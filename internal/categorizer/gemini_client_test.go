package categorizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/reporterror"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp       *genai.GenerateContentResponse
	err        error
	lastPrompt string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if text, ok := p.(genai.Text); ok {
			f.lastPrompt += string(text)
		}
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
	}
}

func TestGeminiClient_Classify(t *testing.T) {
	tests := []struct {
		name        string
		generator   *fakeGenerator
		expected    string
		expectedErr error
	}{
		{
			name:      "exact answer",
			generator: &fakeGenerator{resp: textResponse("VACATION")},
			expected:  models.CategoryVacation,
		},
		{
			name:      "answer with noise",
			generator: &fakeGenerator{resp: textResponse(" eating out.\n")},
			expected:  models.CategoryEatingOut,
		},
		{
			name:      "none",
			generator: &fakeGenerator{resp: textResponse("NONE")},
			expected:  "",
		},
		{
			name:        "no candidates",
			generator:   &fakeGenerator{resp: &genai.GenerateContentResponse{}},
			expectedErr: reporterror.ErrMalformedResponse,
		},
		{
			name:      "api error",
			generator: &fakeGenerator{err: errors.New("quota exceeded")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &GeminiClient{
				model:      tt.generator,
				categories: models.KnownCategories,
				logger:     nopLogger(),
			}

			label, err := client.Classify(context.Background(), "flight to Rome")
			if tt.generator.err != nil || tt.expectedErr != nil {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, label)
			assert.True(t, strings.Contains(tt.generator.lastPrompt, "flight to Rome"))
			assert.True(t, strings.Contains(tt.generator.lastPrompt, models.CategoryMedical))
		})
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash", models.KnownCategories, nil)
	assert.Error(t, err)
}

func TestMatchCategory(t *testing.T) {
	assert.Equal(t, models.CategoryBills, matchCategory("bills", models.KnownCategories))
	assert.Equal(t, models.CategoryCarMaintenance, matchCategory("`Car Maintenance`", models.KnownCategories))
	assert.Equal(t, "", matchCategory("pets", models.KnownCategories))
}

func nopLogger() logging.Logger {
	return logging.NewNopLogger()
}
