package yarnwhy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"github.com/albertocavalcante/go-yarnwhy/graph"
)

// Defaults applied when the corresponding option is not given.
const (
	DefaultMaxDepth    = 10
	DefaultVisitCap    = graph.DefaultVisitCap
	DefaultConcurrency = 1
)

// Option configures a query.
type Option func(*config) error

// config holds all query configuration.
type config struct {
	filter      *semver.Constraints
	filterRaw   string
	maxDepth    int
	dedup       bool
	visitCap    int
	concurrency int

	// logger is nil unless WithLogger was given; see log().
	logger *slog.Logger
}

// WithVersionFilter keeps only entries of the queried package whose resolved
// version satisfies constraint, e.g. "^4.0.0" or ">=1.2 <2". Filtering happens
// before the graph is built, so removed entries contribute no edges.
// An empty constraint disables filtering.
func WithVersionFilter(constraint string) Option {
	return func(c *config) error {
		if constraint == "" {
			c.filter, c.filterRaw = nil, ""
			return nil
		}
		parsed, err := semver.NewConstraint(constraint)
		if err != nil {
			return fmt.Errorf("%w: version filter %q: %v", ErrInvalidArgument, constraint, err)
		}
		c.filter, c.filterRaw = parsed, constraint
		return nil
	}
}

// WithMaxDepth truncates every path to the n descriptors nearest the queried
// package before the tree is built. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidArgument, n)
		}
		c.maxDepth = n
		return nil
	}
}

// WithDedup enables or disables collapsing of repeated subtrees.
// Enabled by default.
func WithDedup(dedup bool) Option {
	return func(c *config) error {
		c.dedup = dedup
		return nil
	}
}

// WithVisitCap sets how many times one walk may enter the same descriptor.
// Lower caps finish faster on cyclic graphs and may omit paths.
func WithVisitCap(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: visit cap must be at least 1, got %d", ErrInvalidArgument, n)
		}
		c.visitCap = n
		return nil
	}
}

// WithConcurrency sets how many query descriptors are walked in parallel.
// Output does not depend on it.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidArgument, n)
		}
		c.concurrency = n
		return nil
	}
}

// WithLogger sets a structured logger for query diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	yarnwhy.WhyFile("yarn.lock", "lodash", yarnwhy.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// ValidateOptions reports the first invalid option without running a query.
func ValidateOptions(opts ...Option) error {
	_, err := newConfig(opts...)
	return err
}

// newConfig applies opts over the defaults.
func newConfig(opts ...Option) (*config, error) {
	c := &config{
		maxDepth:    DefaultMaxDepth,
		dedup:       true,
		visitCap:    DefaultVisitCap,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}
