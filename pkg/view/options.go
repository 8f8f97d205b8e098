package view

import "log/slog"

// DefaultMaxDepth bounds the layout chain of a single render.
const DefaultMaxDepth = 64

// Option configures a View.
type Option func(*options)

type options struct {
	ext         string
	logger      *slog.Logger
	maxDepth    int
	inheritDirs bool
}

// WithExtension overrides the template extension of the executor.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.ext = ext
	}
}

// WithLogger sets the logger used for chain tracing at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth sets how many templates a single layout chain may execute.
// A value of zero or less disables the ceiling; a cyclic chain then never ends.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithInheritedDirectories makes partials start from a copy of the
// enclosing view's search directories.
func WithInheritedDirectories() Option {
	return func(o *options) {
		o.inheritDirs = true
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
