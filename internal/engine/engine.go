package engine

import (
	"fmt"
	"log/slog"
	"tabDB/internal/logger"
	"tabDB/internal/metrics"
	"tabDB/internal/storage"
)

// Limits are the hard caps checked before any mutation.
type Limits struct {
	MaxTokens  int // tokens per command
	MaxRows    int // data rows per table
	MaxColumns int // columns per table, id included
}

// DefaultLimits returns the standard caps: 1000 tokens, 1000 rows and 100
// columns.
func DefaultLimits() Limits {
	return Limits{MaxTokens: 1000, MaxRows: 1000, MaxColumns: 100}
}

// DBEngine is the command dispatcher. It holds no table state between
// commands: every command that needs a table reloads it from the store.
type DBEngine struct {
	started bool
	store   storage.Store
	limits  Limits
	log     *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a DBEngine.
type Option func(*DBEngine)

func WithLimits(l Limits) Option {
	return func(e *DBEngine) { e.limits = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *DBEngine) { e.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *DBEngine) { e.metrics = m }
}

// New creates a new DBEngine on top of store.
func New(store storage.Store, opts ...Option) *DBEngine {
	e := &DBEngine{
		store:  store,
		limits: DefaultLimits(),
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start runs initialization steps for the engine.
func (e *DBEngine) Start() error {
	if e.started {
		return fmt.Errorf("engine already started")
	}
	e.started = true
	e.log.Debug("engine started", "max_tokens", e.limits.MaxTokens,
		"max_rows", e.limits.MaxRows, "max_columns", e.limits.MaxColumns)
	return nil
}

// Store returns the underlying store.
func (e *DBEngine) Store() storage.Store {
	return e.store
}

// ListTables returns the tables of db.
func (e *DBEngine) ListTables(db string) ([]string, error) {
	if !e.started {
		return nil, fmt.Errorf("engine not started")
	}
	return e.store.ListTables(db)
}
