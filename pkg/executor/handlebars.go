package executor

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/isholao/viewctl/pkg/view"
)

// Handlebars executes templates with the raymond handlebars engine.
//
// Helpers are registered per template so that they close over the view
// being rendered. Blocks are captured with {{#capture "name"}}...{{/capture}}.
// A partial sees only the hash arguments of its call, as in
// {{partial "nav" dir="partials" items=nav}}.
type Handlebars struct {
	cfg *config
}

var _ view.Executor = (*Handlebars)(nil)

// NewHandlebars returns a handlebars executor.
func NewHandlebars(opts ...Option) *Handlebars {
	return &Handlebars{cfg: newConfig(opts)}
}

func (e *Handlebars) Name() string      { return NameHandlebars }
func (e *Handlebars) Extension() string { return ".hbs" }

func (e *Handlebars) Execute(h view.Handle, path string) error {
	if e.cfg.err != nil {
		return e.cfg.err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %q: %w", path, err)
	}
	tpl, err := raymond.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse template %q: %w", path, err)
	}
	tpl.RegisterHelpers(e.helpers(h))

	out, err := tpl.Exec(h.Data())
	if err != nil {
		return fmt.Errorf("render template %q: %w", path, err)
	}
	if _, err := io.WriteString(h, out); err != nil {
		return fmt.Errorf("write output of %q: %w", path, err)
	}
	return nil
}

// helpers binds the view operations to h. raymond reports a helper failure
// by recovering an error panic, so failing helpers panic with their error.
func (e *Handlebars) helpers(h view.Handle) map[string]interface{} {
	helpers := map[string]interface{}{
		"extends": func(name string) string {
			must(h.SetParent(name))
			return ""
		},
		"content": func() raymond.SafeString {
			return raymond.SafeString(h.Content())
		},
		"capture": func(name string, options *raymond.Options) string {
			h.BeginBlock(name)
			_, err := io.WriteString(h, options.Fn())
			must(err)
			must(h.EndBlock())
			return ""
		},
		"getBlock": func(name string) raymond.SafeString {
			return raymond.SafeString(h.Block(name))
		},
		"hasBlock": func(name string) bool {
			return h.HasBlock(name)
		},
		"partial": func(name string, options *raymond.Options) raymond.SafeString {
			out, err := h.Partial(name, options.HashStr("dir"), partialData(options.Hash()))
			must(err)
			return raymond.SafeString(out)
		},
		"get": func(key string) interface{} {
			out, err := lookup(h, key)
			must(err)
			return out
		},
		"set": func(key string, value interface{}) string {
			h.Set(key, value)
			return ""
		},
		"call": func(name string, arg interface{}) interface{} {
			out, err := h.Call(name, arg)
			must(err)
			return out
		},
		"debug": func(value interface{}) string {
			if e.cfg.debug != nil {
				_, _ = fmt.Fprintf(e.cfg.debug, "%s: %v", h.Current(), value)
			}
			return ""
		},
		"uppercase": strings.ToUpper,
		"lowercase": strings.ToLower,
		"trim":      strings.TrimSpace,
		"default": func(value interface{}, def interface{}) interface{} {
			if value == nil || value == "" {
				return def
			}
			return value
		},
		"eq": func(a, b interface{}) bool {
			return reflect.DeepEqual(a, b)
		},
	}
	for name, fn := range e.cfg.funcs {
		helpers[name] = fn
	}

	// raymond checks helper arity before dispatch, so closures are exposed
	// as zero-argument helpers; use call to pass an argument.
	for _, name := range h.Closures() {
		if _, taken := helpers[name]; taken || builtinHelpers[name] {
			continue
		}
		helpers[name] = closureHelper(h, name)
	}
	return helpers
}

// builtinHelpers are the raymond helpers a closure must not shadow.
var builtinHelpers = map[string]bool{
	"if": true, "unless": true, "with": true, "each": true,
	"log": true, "lookup": true, "equal": true,
}

func closureHelper(h view.Handle, name string) func(*raymond.Options) interface{} {
	return func(_ *raymond.Options) interface{} {
		out, err := h.Call(name)
		must(err)
		return out
	}
}

// partialData is the hash of a partial call without its dir argument.
func partialData(hash map[string]interface{}) map[string]interface{} {
	data := make(map[string]interface{}, len(hash))
	for k, v := range hash {
		if k != "dir" {
			data[k] = v
		}
	}
	return data
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
