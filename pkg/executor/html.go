package executor

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/isholao/viewctl/pkg/view"
)

// HTML executes templates with html/template. Layout content, blocks and
// partials are inserted as trusted markup; everything else is escaped.
type HTML struct {
	cfg *config
}

var _ view.Executor = (*HTML)(nil)

// NewHTML returns an html/template executor.
func NewHTML(opts ...Option) *HTML {
	return &HTML{cfg: newConfig(opts)}
}

func (e *HTML) Name() string      { return NameHTML }
func (e *HTML) Extension() string { return ".html" }

func (e *HTML) Execute(h view.Handle, path string) error {
	if e.cfg.err != nil {
		return e.cfg.err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %q: %w", path, err)
	}
	funcs := buildFuncMap(h, e.cfg, func(s string) any { return template.HTML(s) })
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse template %q: %w", path, err)
	}
	if err := tmpl.Execute(h, h.Data()); err != nil {
		return fmt.Errorf("render template %q: %w", path, err)
	}
	return nil
}
