package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/reporterror"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// contentGenerator is the part of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements Client by asking a Gemini model to choose one of a
// fixed list of categories.
type GeminiClient struct {
	client     *genai.Client
	model      contentGenerator
	categories []string
	logger     logging.Logger
}

// NewGeminiClient creates a client for the given model. categories is the
// closed list of labels the model may answer with.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, categories []string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.SetCandidateCount(1)

	return &GeminiClient{
		client:     client,
		model:      model,
		categories: categories,
		logger:     logger,
	}, nil
}

// Classify asks the model for the category of description.
func (c *GeminiClient) Classify(ctx context.Context, description string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(c.prompt(description)))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	answer, err := responseText(resp)
	if err != nil {
		return "", err
	}

	label := matchCategory(answer, c.categories)
	c.logger.Debug("Transaction classified by Gemini",
		logging.Field{Key: logging.FieldDescription, Value: description},
		logging.Field{Key: logging.FieldAnswer, Value: answer},
		logging.Field{Key: logging.FieldCategory, Value: label})
	return label, nil
}

// Close releases the underlying gRPC connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *GeminiClient) prompt(description string) string {
	var b strings.Builder
	b.WriteString("Classify the following bank transaction description into exactly one spending category.\n")
	b.WriteString("Answer with the category name only, or NONE if no category fits.\n")
	b.WriteString("Categories: ")
	b.WriteString(strings.Join(c.categories, ", "))
	b.WriteString("\nDescription: ")
	b.WriteString(description)
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", reporterror.ErrMalformedResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: empty candidate", reporterror.ErrMalformedResponse)
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// matchCategory maps a free-form model answer onto one of categories.
// Unknown answers yield the empty label.
func matchCategory(answer string, categories []string) string {
	normalized := strings.ToUpper(strings.Trim(answer, " .\"'`\n"))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, category := range categories {
		if normalized == strings.ToUpper(category) {
			return category
		}
	}
	return ""
}
