// Package engine contains the high-level orchestration logic for rendering a project.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/isholao/viewctl/internal/config"
	"github.com/isholao/viewctl/internal/datasrc"
	"github.com/isholao/viewctl/pkg/executor"
	"github.com/isholao/viewctl/pkg/view"
)

// Engine turns a project configuration into configured views and renders them.
type Engine struct {
	project *config.Project
	logger  *slog.Logger
	debug   io.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger passed to every view.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDebugWriter sets the destination of the templates' debug helper.
func WithDebugWriter(w io.Writer) Option {
	return func(e *Engine) {
		e.debug = w
	}
}

// NewEngine constructs an Engine for project.
func NewEngine(project *config.Project, opts ...Option) *Engine {
	e := &Engine{
		project: project,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RenderOptions adjusts a single render.
type RenderOptions struct {
	// Entry overrides the project entry template.
	Entry string
	// Directories are searched before the project directories.
	Directories []string
	// Data overrides every other data source.
	Data map[string]any
}

// Result is the outcome of a successful render.
type Result struct {
	// Entry is the resolved path of the entry template.
	Entry string
	// Output is the rendered text of the last template in the chain.
	Output string
	// Blocks holds every named block captured along the chain.
	Blocks map[string]string
	// Elapsed is the wall time of the render.
	Elapsed time.Duration
}

// NewView builds a view with the project executor, options and directories.
// extraDirs are registered first.
func (e *Engine) NewView(extraDirs ...string) (*view.View, error) {
	exec, err := executor.New(e.project.Executor, executor.WithDebugWriter(e.debug))
	if err != nil {
		return nil, err
	}

	opts := []view.Option{view.WithLogger(e.logger)}
	if e.project.Extension != "" {
		opts = append(opts, view.WithExtension(e.project.Extension))
	}
	if e.project.MaxDepth != 0 {
		opts = append(opts, view.WithMaxDepth(e.project.MaxDepth))
	}
	if e.project.InheritDirectories {
		opts = append(opts, view.WithInheritedDirectories())
	}
	v := view.New(exec, opts...)

	if err := v.AddDirectories(extraDirs); err != nil {
		return nil, err
	}
	if err := v.AddDirectories(e.project.ResolvePaths().Directories); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadData merges the template data sources in increasing precedence:
// data files, prefixed environment variables, inline project data, extra.
func (e *Engine) LoadData(extra map[string]any) (map[string]any, error) {
	files, err := datasrc.LoadFiles(e.project.Root, e.project.ResolvePaths().DataFiles)
	if err != nil {
		return nil, err
	}
	return datasrc.Merge(files, datasrc.FromOS(e.project.EnvPrefix), e.project.Data, extra), nil
}

// Resolve returns the template file name resolves to.
func (e *Engine) Resolve(name string, extraDirs ...string) (string, error) {
	v, err := e.NewView(extraDirs...)
	if err != nil {
		return "", err
	}
	return v.Resolver().Resolve(name)
}

// Render renders the entry template. When ctx is done first Render returns
// its error at once, but templates cannot be interrupted: the abandoned
// render keeps running in the background until its executor returns. That
// is acceptable for a process that exits after one render; long-lived
// callers should bound template work themselves.
func (e *Engine) Render(ctx context.Context, opts RenderOptions) (*Result, error) {
	entry := opts.Entry
	if entry == "" {
		entry = e.project.Entry
	}
	if entry == "" {
		return nil, view.ErrNoViewSet
	}

	v, err := e.NewView(opts.Directories...)
	if err != nil {
		return nil, err
	}
	data, err := e.LoadData(opts.Data)
	if err != nil {
		return nil, err
	}
	v.Populate(data)
	if err := v.SetEntry(entry); err != nil {
		return nil, err
	}

	start := time.Now()
	done := make(chan rendered, 1)
	go func() {
		out, err := v.Render()
		done <- rendered{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("render %s: %w", entry, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		e.logger.Debug("rendered", "entry", v.Entry(), "elapsed", time.Since(start))
		return &Result{
			Entry:   v.Entry(),
			Output:  r.out,
			Blocks:  v.Blocks(),
			Elapsed: time.Since(start),
		}, nil
	}
}
