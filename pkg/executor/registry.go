package executor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/isholao/viewctl/pkg/view"
)

const (
	// NameText selects text/template.
	NameText = "text"
	// NameHTML selects html/template.
	NameHTML = "html"
	// NameHandlebars selects the raymond handlebars engine.
	NameHandlebars = "handlebars"
)

var constructors = map[string]func(*config) view.Executor{
	NameText:       func(cfg *config) view.Executor { return &Text{cfg: cfg} },
	NameHTML:       func(cfg *config) view.Executor { return &HTML{cfg: cfg} },
	NameHandlebars: func(cfg *config) view.Executor { return &Handlebars{cfg: cfg} },
}

// UnknownExecutorError is returned by New for an unregistered name.
type UnknownExecutorError struct {
	Name string
}

func (e *UnknownExecutorError) Error() string {
	if e == nil {
		return "unknown executor"
	}
	return fmt.Sprintf("unknown executor %q (available: %s)", e.Name, strings.Join(Names(), ", "))
}

// New returns the executor registered under name. Invalid options are
// reported here instead of on the first Execute.
func New(name string, opts ...Option) (view.Executor, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownExecutorError{Name: name}
	}
	cfg := newConfig(opts)
	if cfg.err != nil {
		return nil, cfg.err
	}
	return ctor(cfg), nil
}

// Names lists the registered executor names in sorted order.
func Names() []string {
	out := make([]string, 0, len(constructors))
	for name := range constructors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
