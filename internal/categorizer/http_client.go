package categorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/reporterror"
)

// ClassificationRequest is the JSON body accepted by the classification endpoint.
type ClassificationRequest struct {
	TransactionDescription string `json:"transactionDescription"`
}

// ClassificationResponse is the JSON body returned by the classification endpoint.
// TransactionCategory is absent or null when no category applies.
type ClassificationResponse struct {
	TransactionCategory *string `json:"transactionCategory,omitempty"`
}

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient calls a remote classification service over HTTP.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     logging.Logger
}

// NewHTTPClient creates a client posting to endpoint. A nil httpClient gets a
// default client with a 60s transport timeout; per-call deadlines come from ctx.
func NewHTTPClient(endpoint string, httpClient *http.Client, logger logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HTTPClient{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Classify posts description to the classification endpoint.
func (c *HTTPClient) Classify(ctx context.Context, description string) (string, error) {
	body, err := json.Marshal(ClassificationRequest{TransactionDescription: description})
	if err != nil {
		return "", fmt.Errorf("failed to encode classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build classification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("classification request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WithError(cerr).Debug("Failed to close classification response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", reporterror.ErrUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read classification response: %w", err)
	}

	var payload ClassificationResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", reporterror.ErrMalformedResponse, err)
	}

	if payload.TransactionCategory == nil {
		c.logger.Debug("Classification service returned no category",
			logging.Field{Key: logging.FieldDescription, Value: description})
		return "", nil
	}
	return *payload.TransactionCategory, nil
}
