package api

import (
	"net/http"
	"regexp"
	"strings"

	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
)

// graphQLRequest is the subset of a GraphQL request this server understands:
// the transactions query, with its arguments passed as variables.
type graphQLRequest struct {
	Query     string `json:"query"`
	Variables struct {
		User      string `json:"user"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"variables"`
}

// transactionsOperation matches a query operation, named or anonymous, whose
// first selection is the transactions field.
var transactionsOperation = regexp.MustCompile(`^\s*(query\b[^{]*)?\{\s*transactions\s*[({]`)

type graphQLTransaction struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   *graphQLData   `json:"data,omitempty"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type graphQLData struct {
	Transactions []graphQLTransaction `json:"transactions"`
}

// handleGraphQL answers the transactions query from the local transaction
// source, so that a GraphQL source can be pointed at this server.
//
// The grammar is deliberately narrow: the document must be a single query
// operation whose first selection is transactions. Arguments are read from
// the user, startDate and endDate variables, never from inline literals, and
// the response always carries amount and description whatever the selection
// set asks for. Mutations, subscriptions and other fields are rejected.
func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, graphQLResponse{Errors: []graphQLError{{Message: "invalid request body"}}})
		return
	}
	if !transactionsOperation.MatchString(req.Query) {
		s.writeJSON(w, http.StatusBadRequest, graphQLResponse{Errors: []graphQLError{{Message: "only the transactions query is supported"}}})
		return
	}
	if strings.TrimSpace(req.Variables.User) == "" {
		s.writeJSON(w, http.StatusOK, graphQLResponse{Errors: []graphQLError{{Message: "variable $user is required"}}})
		return
	}

	txs, err := s.transactions.Transactions(r.Context(), models.TransactionQuery{
		Username:  req.Variables.User,
		StartDate: req.Variables.StartDate,
		EndDate:   req.Variables.EndDate,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Transactions query failed",
			logging.Field{Key: logging.FieldUser, Value: req.Variables.User})
		s.writeJSON(w, http.StatusOK, graphQLResponse{Errors: []graphQLError{{Message: err.Error()}}})
		return
	}

	out := make([]graphQLTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, graphQLTransaction{Amount: tx.Amount.InexactFloat64(), Description: tx.Description})
	}
	s.writeJSON(w, http.StatusOK, graphQLResponse{Data: &graphQLData{Transactions: out}})
}
