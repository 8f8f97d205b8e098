package executor

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
)

// Option configures an executor.
type Option func(*config)

type config struct {
	debug io.Writer
	funcs map[string]any
	// err holds the first invalid option; Execute reports it.
	err error
}

// WithDebugWriter sets the destination of the debug helper. Output is
// dropped when no writer is configured.
func WithDebugWriter(w io.Writer) Option {
	return func(c *config) {
		c.debug = w
	}
}

// WithFuncs registers additional helpers. For the Go template executors a
// helper with the same name as a built-in replaces it; the handlebars
// executor registers them as raymond helpers. Every value must be a non-nil
// function returning one value, optionally followed by an error.
func WithFuncs(funcs map[string]any) Option {
	return func(c *config) {
		if c.funcs == nil {
			c.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			c.funcs[name] = fn
		}
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// InvalidFuncError reports a WithFuncs entry that cannot be used as a helper.
type InvalidFuncError struct {
	Name   string
	Reason string
}

func (e *InvalidFuncError) Error() string {
	if e == nil {
		return "invalid helper"
	}
	return fmt.Sprintf("invalid helper %q: %s", e.Name, e.Reason)
}

// IsInvalidFunc reports whether err is an InvalidFuncError.
func IsInvalidFunc(err error) bool {
	var target *InvalidFuncError
	return errors.As(err, &target)
}

func validateFunc(name string, fn any) error {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return &InvalidFuncError{Name: name, Reason: fmt.Sprintf("%T is not a function", fn)}
	}
	typ := rv.Type()
	switch {
	case typ.NumOut() == 1:
	case typ.NumOut() == 2 && typ.Out(1) == errorType:
	default:
		return &InvalidFuncError{Name: name, Reason: "must return a value and an optional error"}
	}
	return nil
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}

	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := validateFunc(name, c.funcs[name]); err != nil {
			c.err = err
			break
		}
	}
	return c
}
