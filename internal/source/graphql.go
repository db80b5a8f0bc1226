package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"

	"github.com/shopspring/decimal"
)

// maxResponseBytes bounds how much of a GraphQL response body is read.
const maxResponseBytes = 4 << 20

// TransactionsQuery is the GraphQL document sent to the transactions API.
const TransactionsQuery = `query($user:String!, $startDate:String, $endDate:String){
  transactions(username: $user, startDate: $startDate, endDate: $endDate) {
    amount
    description
  }
}`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data struct {
		Transactions []struct {
			Amount      decimal.Decimal `json:"amount"`
			Description string          `json:"description"`
		} `json:"transactions"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// GraphQLSource fetches transactions from a GraphQL endpoint.
type GraphQLSource struct {
	endpoint   string
	httpClient *http.Client
	logger     logging.Logger
}

// NewGraphQLSource creates a source querying endpoint.
func NewGraphQLSource(endpoint string, httpClient *http.Client, logger logging.Logger) *GraphQLSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GraphQLSource{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Transactions implements TransactionSource.
func (s *GraphQLSource) Transactions(ctx context.Context, query models.TransactionQuery) ([]models.Transaction, error) {
	variables := map[string]interface{}{"user": query.Username}
	if query.StartDate != "" {
		variables["startDate"] = query.StartDate
	}
	if query.EndDate != "" {
		variables["endDate"] = query.EndDate
	}

	body, err := json.Marshal(graphQLRequest{Query: TransactionsQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.WithError(cerr).Debug("Failed to close graphql response body")
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read graphql response: %w", err)
	}

	var payload graphQLResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("graphql endpoint returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(payload.Errors) > 0 {
		messages := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("graphql endpoint returned status %d", resp.StatusCode)
	}

	transactions := make([]models.Transaction, 0, len(payload.Data.Transactions))
	for _, t := range payload.Data.Transactions {
		transactions = append(transactions, models.Transaction{
			Description: t.Description,
			Amount:      t.Amount,
		})
	}

	s.logger.Debug("Fetched transactions",
		logging.Field{Key: logging.FieldSource, Value: "graphql"},
		logging.Field{Key: logging.FieldUser, Value: query.Username},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}
