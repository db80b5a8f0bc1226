// Package container provides dependency injection for the expense-report application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/expense-report/internal/batch"
	"fjacquet/expense-report/internal/cache"
	"fjacquet/expense-report/internal/categorizer"
	"fjacquet/expense-report/internal/config"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/report"
	"fjacquet/expense-report/internal/source"
	"fjacquet/expense-report/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.RuleStore
	cache      *cache.ClassificationCache
	client     categorizer.Client
	dispatcher *batch.Dispatcher
	source     source.TransactionSource
	generator  *report.Generator

	closers []io.Closer
}

// Option overrides a dependency the container would otherwise build from configuration.
type Option func(*Container)

// WithLogger replaces the configured logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// WithClient replaces the configured classification client.
func WithClient(client categorizer.Client) Option {
	return func(c *Container) { c.client = client }
}

// WithSource replaces the configured transaction source.
func WithSource(src source.TransactionSource) Option {
	return func(c *Container) { c.source = src }
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//   - opts: Optional overrides, mostly for tests
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	// Create logger first as it's needed by other components
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	}

	c.store = store.NewRuleStore(cfg.Classification.RulesFile, c.logger)
	c.cache = cache.New()

	if c.client == nil {
		client, err := c.buildClient()
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.client = client
	}

	strategy, err := batch.ParseStrategy(cfg.Classification.Strategy)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.dispatcher = batch.NewDispatcher(c.client, c.cache, c.logger,
		batch.WithConcurrency(cfg.Classification.Concurrency),
		batch.WithCallTimeout(time.Duration(cfg.Classification.TimeoutSeconds)*time.Second),
		batch.WithStrategy(strategy),
	)

	if c.source == nil {
		src, err := c.buildSource()
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.source = src
	}

	c.generator = report.NewGenerator(c.source, c.dispatcher, c.logger)

	c.logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: cfg.Classification.Backend},
		logging.Field{Key: logging.FieldSource, Value: cfg.Source.Type},
		logging.Field{Key: logging.FieldStrategy, Value: string(strategy)},
		logging.Field{Key: logging.FieldConcurrency, Value: cfg.Classification.Concurrency})

	return c, nil
}

func (c *Container) buildClient() (categorizer.Client, error) {
	cfg := c.config
	switch cfg.Classification.Backend {
	case config.BackendHTTP:
		return categorizer.NewHTTPClient(cfg.Classification.Endpoint, nil, c.logger), nil
	case config.BackendKeyword:
		return categorizer.NewKeywordClassifier(c.store, c.logger)
	case config.BackendGemini:
		categories := models.KnownCategories
		if rules, err := c.store.LoadCategories(); err == nil && len(rules) > 0 {
			categories = make([]string, 0, len(rules))
			for _, rule := range rules {
				categories = append(categories, rule.Name)
			}
		}
		client, err := categorizer.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, categories, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown classification backend: %s", cfg.Classification.Backend)
	}
}

func (c *Container) buildSource() (source.TransactionSource, error) {
	cfg := c.config
	switch cfg.Source.Type {
	case config.SourceGraphQL:
		return source.NewGraphQLSource(cfg.Source.GraphQLEndpoint, nil, c.logger), nil
	case config.SourceSQLite:
		src, err := source.OpenSQLiteSource(cfg.Source.SQLitePath, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, src)
		return src, nil
	case config.SourceCSV:
		return source.NewCSVSource(cfg.Source.CSVFile, c.logger), nil
	case config.SourceMemory:
		if cfg.Source.SeedFile == "" {
			c.logger.Warn("Memory source has no seed file and starts empty")
			return source.NewMemorySource(), nil
		}
		records, err := source.LoadCSVRecords(cfg.Source.SeedFile, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to seed memory source: %w", err)
		}
		c.logger.Info("Memory source seeded",
			logging.Field{Key: logging.FieldFile, Value: cfg.Source.SeedFile},
			logging.Field{Key: logging.FieldCount, Value: len(records)})
		return source.NewMemorySource(records...), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Source.Type)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the keyword rule store.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetCache returns the process-wide classification cache.
func (c *Container) GetCache() *cache.ClassificationCache {
	return c.cache
}

// GetClient returns the classification client.
func (c *Container) GetClient() categorizer.Client {
	return c.client
}

// GetDispatcher returns the batch dispatcher.
func (c *Container) GetDispatcher() *batch.Dispatcher {
	return c.dispatcher
}

// GetSource returns the transaction source.
func (c *Container) GetSource() source.TransactionSource {
	return c.source
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// Close releases the database handle and AI client, if any.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	if c.logger != nil {
		c.logger.Debug("Container closed")
	}
	return firstErr
}
