// Package api exposes classification and report generation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fjacquet/expense-report/internal/categorizer"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/source"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Routes served by Server.
const (
	RouteHealth         = "/health"
	RouteClassification = "/transaction/classification"
	RouteGenerateReport = "/transaction/generateReport"
	RouteGraphQL        = "/graphql"
)

// ErrClassificationLoop is returned by CheckClassificationEndpoint when the
// remote classifier would be this server's own classification route.
var ErrClassificationLoop = errors.New("classification endpoint points at this server")

// ReportGenerator produces category totals. *report.Generator implements it.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, username, startDate, endDate string) (models.CategoryTotals, error)
}

// Server routes HTTP requests to the classifier, the report generator and,
// when configured, the transaction source.
type Server struct {
	router       *mux.Router
	classifier   categorizer.Client
	generator    ReportGenerator
	transactions source.TransactionSource
	logger       logging.Logger
}

// NewServer builds the router. transactions may be nil, in which case the
// /graphql endpoint is not served.
func NewServer(classifier categorizer.Client, generator ReportGenerator, transactions source.TransactionSource, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Server{
		router:       mux.NewRouter(),
		classifier:   classifier,
		generator:    generator,
		transactions: transactions,
		logger:       logger.WithFields(logging.Component("api")),
	}

	s.router.Use(s.logRequests)
	s.router.HandleFunc(RouteHealth, s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc(RouteClassification, s.handleClassification).Methods(http.MethodPost)
	s.router.HandleFunc(RouteGenerateReport, s.handleGenerateReport).Methods(http.MethodPost)
	if transactions != nil {
		s.router.HandleFunc(RouteGraphQL, s.handleGraphQL).Methods(http.MethodPost)
	}
	return s
}

// CheckClassificationEndpoint reports ErrClassificationLoop when endpoint
// addresses the classification route of a server listening on addr from the
// same host. Such a server would forward every classification to itself.
// Endpoints that do not parse are left to config validation.
func CheckClassificationEndpoint(endpoint, addr string) error {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return nil
	}
	if strings.TrimSuffix(u.Path, "/") != RouteClassification {
		return nil
	}

	_, listenPort, err := net.SplitHostPort(addr)
	if err != nil {
		return nil
	}
	endpointPort := u.Port()
	if endpointPort == "" {
		endpointPort = "80"
		if u.Scheme == "https" {
			endpointPort = "443"
		}
	}
	if endpointPort != listenPort || !isLocalHost(u.Hostname()) {
		return nil
	}
	return fmt.Errorf("%w: %s (use the keyword or gemini backend to serve classification)", ErrClassificationLoop, endpoint)
}

func isLocalHost(host string) bool {
	if host == "" || strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", logging.Field{Key: logging.FieldAddr, Value: addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("Request served",
			logging.Field{Key: logging.FieldMethod, Value: r.Method},
			logging.Field{Key: logging.FieldEndpoint, Value: r.URL.Path},
			logging.Field{Key: logging.FieldStatus, Value: rec.status},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(started).Milliseconds()})
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Warn("Failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
