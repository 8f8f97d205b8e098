package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/isholao/viewctl/pkg/view"
)

// Text executes templates with text/template.
type Text struct {
	cfg *config
}

var _ view.Executor = (*Text)(nil)

// NewText returns a text/template executor.
func NewText(opts ...Option) *Text {
	return &Text{cfg: newConfig(opts)}
}

// Name implements view.Executor.
func (e *Text) Name() string { return NameText }

// Extension implements view.Executor.
func (e *Text) Extension() string { return ".tpl" }

// Execute parses path with the helpers bound to h and writes the result to h.
func (e *Text) Execute(h view.Handle, path string) error {
	if e.cfg.err != nil {
		return e.cfg.err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %q: %w", path, err)
	}
	funcs := buildFuncMap(h, e.cfg, func(s string) any { return s })
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse template %q: %w", path, err)
	}
	if err := tmpl.Execute(h, h.Data()); err != nil {
		return fmt.Errorf("render template %q: %w", path, err)
	}
	return nil
}
