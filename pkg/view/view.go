package view

import (
	"errors"
	"fmt"
	"log/slog"
)

var _ Handle = (*View)(nil)

// View renders an entry template through its chain of parent layouts while
// collecting named blocks. A View is not safe for concurrent use; every
// render that needs isolation gets its own View.
type View struct {
	resolver *Resolver
	ctx      *Context
	exec     Executor
	opts     options
	logger   *slog.Logger

	entry    string
	blocks   map[string]string
	captures CaptureStack
}

// New constructs a View that executes templates with exec.
func New(exec Executor, opts ...Option) *View {
	o := newOptions(opts)
	ext := o.ext
	if ext == "" && exec != nil {
		ext = exec.Extension()
	}
	return &View{
		resolver: NewResolver(ext),
		ctx:      NewContext(),
		exec:     exec,
		opts:     o,
		logger:   o.logger,
		blocks:   make(map[string]string),
	}
}

// Resolver returns the resolver backing the view.
func (v *View) Resolver() *Resolver { return v.resolver }

// Context returns the data context of the view.
func (v *View) Context() *Context { return v.ctx }

// AddDirectory registers a search directory.
func (v *View) AddDirectory(path string) error {
	return v.resolver.AddDirectory(path)
}

// AddDirectories registers several search directories in order.
func (v *View) AddDirectories(paths []string) error {
	return v.resolver.AddDirectories(paths)
}

// SetData stores a value, or registers a closure, under key.
func (v *View) SetData(key string, value any) {
	v.ctx.Set(key, value)
}

// Set is SetData under the name templates use.
func (v *View) Set(key string, value any) {
	v.ctx.Set(key, value)
}

// Populate stores every entry of data.
func (v *View) Populate(data map[string]any) {
	v.ctx.Populate(data)
}

// Get returns the value stored under key, or nil when unset.
func (v *View) Get(key string) any {
	val, _ := v.ctx.Get(key)
	return val
}

// Lookup returns the tagged value stored or registered under key.
func (v *View) Lookup(key string) (Value, bool) {
	return v.ctx.Lookup(key)
}

// Has reports whether a value is stored under key.
func (v *View) Has(key string) bool {
	return v.ctx.Has(key)
}

// Data returns a snapshot of the stored values.
func (v *View) Data() map[string]any {
	return v.ctx.Data()
}

// Call invokes a registered closure by case-insensitive name.
func (v *View) Call(name string, args ...any) (any, error) {
	return v.ctx.Call(name, args...)
}

// Closures lists the registered closure names.
func (v *View) Closures() []string {
	return v.ctx.Closures()
}

// SetEntry resolves name and makes it the first template of the next render.
func (v *View) SetEntry(name string) error {
	file, err := v.resolver.Resolve(name)
	if err != nil {
		return err
	}
	v.entry = file
	return nil
}

// Entry returns the resolved entry template, or "" when none is set.
func (v *View) Entry() string { return v.entry }

// Current returns the template being executed.
func (v *View) Current() string { return v.ctx.current }

// Content returns the output of the previous template in the chain.
func (v *View) Content() string {
	return v.ctx.content
}

// SetParent requests that the current output be handed to the named layout.
// The layout is resolved immediately.
func (v *View) SetParent(name string) error {
	file, err := v.resolver.Resolve(name)
	if err != nil {
		return err
	}
	v.ctx.parent = file
	return nil
}

// HasParent reports whether a parent layout was requested.
func (v *View) HasParent() bool { return v.ctx.parent != "" }

// Parent returns the resolved path of the requested parent layout.
func (v *View) Parent() string { return v.ctx.parent }

// Write sends p to the innermost open capture scope.
func (v *View) Write(p []byte) (int, error) {
	return v.captures.Write(p)
}

// Render executes the entry template and every parent layout it delegates
// to, returning the output of the last template in the chain. Blocks and
// content from a previous render are cleared first.
func (v *View) Render() (string, error) {
	if v.entry == "" {
		return "", ErrNoViewSet
	}
	if v.exec == nil {
		return "", errors.New("no executor configured")
	}

	v.blocks = make(map[string]string)
	v.ctx.content = ""
	v.ctx.parent = ""
	v.ctx.current = v.entry
	defer func() { v.ctx.current = "" }()

	var chain []string
	for {
		if v.opts.maxDepth > 0 && len(chain) >= v.opts.maxDepth {
			v.reset()
			return "", &LayoutCycleError{Depth: v.opts.maxDepth, Chain: chain}
		}
		chain = append(chain, v.ctx.current)

		v.logger.Debug("executing template", "file", v.ctx.current, "depth", len(chain))
		out, err := v.execute(v.ctx.current)
		if err != nil {
			v.reset()
			return "", err
		}

		if v.ctx.parent == "" {
			v.logger.Debug("render complete", "entry", v.entry, "templates", len(chain), "blocks", len(v.blocks))
			return out, nil
		}

		v.logger.Debug("delegating to layout", "from", v.ctx.current, "layout", v.ctx.parent)
		v.ctx.content = out
		v.ctx.current = v.ctx.parent
		v.ctx.parent = ""
	}
}

// reset drops the state of a failed render so nothing captured before the
// failure stays observable.
func (v *View) reset() {
	v.ctx.parent = ""
	v.ctx.content = ""
	v.blocks = make(map[string]string)
}

// execute runs one template inside its own capture scope.
func (v *View) execute(file string) (string, error) {
	sc := v.captures.Open()
	if err := v.exec.Execute(v, file); err != nil {
		v.captures.Discard(sc)
		return "", fmt.Errorf("execute %s: %w", file, err)
	}
	if name, open := v.captures.openBlockAbove(sc); open {
		v.captures.Discard(sc)
		return "", &UnclosedBlockError{Name: name, File: file}
	}
	out, err := v.captures.Close(sc)
	if err != nil {
		v.captures.Discard(sc)
		return "", fmt.Errorf("execute %s: %w", file, err)
	}
	return out, nil
}
