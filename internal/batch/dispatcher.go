// Package batch resolves category labels for transaction lists with a bounded
// number of concurrent classification calls, and aggregates the result.
package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fjacquet/expense-report/internal/cache"
	"fjacquet/expense-report/internal/categorizer"
	"fjacquet/expense-report/internal/logging"
	"fjacquet/expense-report/internal/models"
	"fjacquet/expense-report/internal/reporterror"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Strategy selects how outstanding classification calls are scheduled.
type Strategy string

const (
	// StrategyPool keeps up to the concurrency limit of calls in flight and
	// starts the next call as soon as any slot frees up.
	StrategyPool Strategy = "pool"
	// StrategyBatch dispatches calls in groups of at most the concurrency
	// limit and waits for a whole group before starting the next one.
	StrategyBatch Strategy = "batch"
)

const (
	// DefaultConcurrency is the default ceiling of in-flight calls.
	DefaultConcurrency = 10
	// DefaultCallTimeout bounds a single classification call.
	DefaultCallTimeout = 30 * time.Second
)

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyPool, StrategyBatch:
		return Strategy(name), nil
	case "":
		return StrategyPool, nil
	default:
		return "", fmt.Errorf("unknown dispatch strategy: %s", name)
	}
}

// Dispatcher resolves a category label for every transaction of a list,
// consulting its cache first and calling the classification client for
// misses.
type Dispatcher struct {
	client      categorizer.Client
	cache       *cache.ClassificationCache
	logger      logging.Logger
	concurrency int
	callTimeout time.Duration
	strategy    Strategy
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConcurrency sets the ceiling of in-flight classification calls.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithCallTimeout bounds each classification call. Zero disables the timeout.
func WithCallTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout >= 0 {
			d.callTimeout = timeout
		}
	}
}

// WithStrategy selects the scheduling strategy.
func WithStrategy(s Strategy) Option {
	return func(d *Dispatcher) {
		if s != "" {
			d.strategy = s
		}
	}
}

// NewDispatcher creates a dispatcher. A nil cache gets a fresh one.
func NewDispatcher(client categorizer.Client, c *cache.ClassificationCache, logger logging.Logger, opts ...Option) *Dispatcher {
	if c == nil {
		c = cache.New()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	d := &Dispatcher{
		client:      client,
		cache:       c,
		logger:      logger.WithFields(logging.Component("dispatcher")),
		concurrency: DefaultConcurrency,
		callTimeout: DefaultCallTimeout,
		strategy:    StrategyPool,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Cache returns the cache owned by the dispatcher.
func (d *Dispatcher) Cache() *cache.ClassificationCache {
	return d.cache
}

// run holds the state of one ResolveAll invocation.
type run struct {
	d       *Dispatcher
	flights singleflight.Group
	hits    atomic.Int64
	calls   atomic.Int64

	mu  sync.Mutex
	out []models.LabeledAmount
}

func (r *run) emit(label string, entry models.LabeledAmount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.Label = label
	r.out = append(r.out, entry)
}

// ResolveAll returns one labeled amount per transaction. The order of the
// result is not significant.
//
// The first failed classification call aborts the invocation with a
// *reporterror.ClassificationError: no further calls are started, the
// calls already in flight are awaited, and no partial result is returned.
func (d *Dispatcher) ResolveAll(ctx context.Context, transactions []models.Transaction) ([]models.LabeledAmount, error) {
	start := time.Now()
	r := &run{
		d:   d,
		out: make([]models.LabeledAmount, 0, len(transactions)),
	}

	var err error
	switch d.strategy {
	case StrategyBatch:
		err = r.resolveInBatches(ctx, transactions)
	default:
		err = r.resolvePooled(ctx, transactions)
	}

	fields := []logging.Field{
		{Key: logging.FieldStrategy, Value: string(d.strategy)},
		{Key: logging.FieldCount, Value: len(transactions)},
		{Key: logging.FieldCacheHits, Value: r.hits.Load()},
		{Key: logging.FieldCalls, Value: r.calls.Load()},
		{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
	}
	if err != nil {
		d.logger.WithError(err).Warn("Transaction resolution aborted", fields...)
		return nil, err
	}
	d.logger.Debug("Transactions resolved", fields...)
	return r.out, nil
}

// resolvePooled runs every cache miss as a task of a pool limited to
// d.concurrency goroutines.
func (r *run) resolvePooled(ctx context.Context, transactions []models.Transaction) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.d.concurrency)

	for _, tx := range transactions {
		// a failed call cancels gctx; stop handing out work
		if gctx.Err() != nil {
			break
		}
		entry := models.LabeledAmount{Amount: tx.Amount}
		if label, ok := r.d.cache.Lookup(tx.Description); ok {
			r.hits.Add(1)
			r.emit(label, entry)
			continue
		}

		description := tx.Description
		// blocks while the pool is full
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			label, err := r.classify(gctx, description)
			if err != nil {
				return err
			}
			r.emit(label, entry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// resolveInBatches groups cache misses into batches of at most d.concurrency
// calls. A batch is fully awaited before the next one is dispatched.
func (r *run) resolveInBatches(ctx context.Context, transactions []models.Transaction) error {
	next := 0
	batchNo := 0
	for next < len(transactions) {
		if err := ctx.Err(); err != nil {
			return err
		}

		pending := make([]models.Transaction, 0, r.d.concurrency)
		for next < len(transactions) && len(pending) < r.d.concurrency {
			tx := transactions[next]
			next++
			if label, ok := r.d.cache.Lookup(tx.Description); ok {
				r.hits.Add(1)
				r.emit(label, models.LabeledAmount{Amount: tx.Amount})
				continue
			}
			pending = append(pending, tx)
		}
		if len(pending) == 0 {
			continue
		}

		batchNo++
		r.d.logger.Debug("Dispatching batch",
			logging.Field{Key: logging.FieldBatch, Value: batchNo},
			logging.Field{Key: logging.FieldCount, Value: len(pending)})

		g, gctx := errgroup.WithContext(ctx)
		for _, tx := range pending {
			description := tx.Description
			entry := models.LabeledAmount{Amount: tx.Amount}
			g.Go(func() error {
				label, err := r.classify(gctx, description)
				if err != nil {
					return err
				}
				r.emit(label, entry)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// classify resolves one description. Concurrent requests for the same
// description within a run share a single outbound call.
func (r *run) classify(ctx context.Context, description string) (string, error) {
	v, err, _ := r.flights.Do(description, func() (interface{}, error) {
		// resolved by an earlier flight since the caller's lookup
		if label, ok := r.d.cache.Lookup(description); ok {
			r.hits.Add(1)
			return label, nil
		}

		callCtx := ctx
		if r.d.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, r.d.callTimeout)
			defer cancel()
		}

		r.calls.Add(1)
		label, err := r.d.client.Classify(callCtx, description)
		if err != nil {
			return "", &reporterror.ClassificationError{Description: description, Err: err}
		}

		stored, _ := r.d.cache.Store(description, models.LabelOrNone(label))
		return stored, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
