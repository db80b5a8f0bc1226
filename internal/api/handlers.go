package api

import (
	"errors"
	"net/http"
	"strings"

	"fjacquet/expense-report/internal/categorizer"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/reporterror"
)

type errorResponse struct {
	Error string `json:"error"`
}

type reportRequest struct {
	User  string `json:"user"`
	Start string `json:"start"`
	End   string `json:"end"`
}

const (
	msgInvalidClassification = "Invalid request: body should be a json with a single property: transactionDescription"
	msgInvalidReport         = "Invalid request: body should be a json with a following properties: user, start, end"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleClassification(w http.ResponseWriter, r *http.Request) {
	var req categorizer.ClassificationRequest
	if err := decodeBody(w, r, &req); err != nil || strings.TrimSpace(req.TransactionDescription) == "" {
		s.writeError(w, http.StatusBadRequest, msgInvalidClassification)
		return
	}

	label, err := s.classifier.Classify(r.Context(), req.TransactionDescription)
	if err != nil {
		s.logger.WithError(err).Warn("Classification failed",
			logging.Field{Key: logging.FieldDescription, Value: req.TransactionDescription})
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	var resp categorizer.ClassificationResponse
	if label != "" {
		resp.TransactionCategory = &label
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeBody(w, r, &req); err != nil || strings.TrimSpace(req.User) == "" {
		s.writeError(w, http.StatusBadRequest, msgInvalidReport)
		return
	}

	totals, err := s.generator.GenerateReport(r.Context(), req.User, req.Start, req.End)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, totals.Floats())
}

// statusFor maps report errors to HTTP statuses.
func statusFor(err error) int {
	var upstream *reporterror.UpstreamFetchError
	var classification *reporterror.ClassificationError
	switch {
	case reporterror.IsClientError(err):
		return http.StatusBadRequest
	case errors.As(err, &upstream), errors.As(err, &classification):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
