package nameconv

import (
	"io"
	"log/slog"
)

// DefaultSeparator is the separator of a Convention built without
// WithSeparator.
const DefaultSeparator = "_"

// DefaultNestedSeparator is the separator conventionally used by nested
// conventions of composed rules, as in "010-005".
const DefaultNestedSeparator = "-"

// Option configures a Convention using the functional options pattern.
type Option func(*conventionConfig)

type conventionConfig struct {
	separator string
	logger    *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func defaultConventionConfig() *conventionConfig {
	return &conventionConfig{
		separator: DefaultSeparator,
		logger:    discardLogger,
	}
}

func applyOptions(opts []Option) *conventionConfig {
	cfg := defaultConventionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithSeparator sets the string names are split on.
// An empty separator has no effect (DefaultSeparator remains active).
func WithSeparator(sep string) Option {
	return func(c *conventionConfig) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// WithLogger sets a logger for debug output. Rule matches and evaluation
// failures are logged at debug level.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *conventionConfig) {
		if logger != nil {
			c.logger = logger
		} else {
			c.logger = discardLogger
		}
	}
}
