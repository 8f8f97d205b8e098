package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// scriptExecutor runs Go functions in place of template files. Scripts are
// keyed by file base name without extension.
type scriptExecutor struct {
	ext     string
	scripts map[string]func(h Handle) error
	calls   []string
}

func newScriptExecutor(scripts map[string]func(h Handle) error) *scriptExecutor {
	return &scriptExecutor{ext: ".tpl", scripts: scripts}
}

func (s *scriptExecutor) Name() string      { return "script" }
func (s *scriptExecutor) Extension() string { return s.ext }

func (s *scriptExecutor) Execute(h Handle, path string) error {
	name := strings.TrimSuffix(filepath.Base(path), s.ext)
	s.calls = append(s.calls, name)
	fn, ok := s.scripts[name]
	if !ok {
		return fmt.Errorf("no script for %s", path)
	}
	return fn(h)
}

func emit(h Handle, s string) {
	_, _ = h.Write([]byte(s))
}

// touchTemplates creates empty files so the resolver can find them.
func touchTemplates(tb testing.TB, dir string, names ...string) {
	tb.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			tb.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// canonical returns dir the way the resolver stores it.
func canonical(tb testing.TB, dir string) string {
	tb.Helper()
	abs, err := filepath.Abs(dir)
	if err != nil {
		tb.Fatalf("abs %s: %v", dir, err)
	}
	clean, err := filepath.EvalSymlinks(abs)
	if err != nil {
		tb.Fatalf("eval symlinks %s: %v", dir, err)
	}
	return clean
}

// newTestView builds a view over a temp directory holding the named templates.
func newTestView(tb testing.TB, exec Executor, names []string, opts ...Option) (*View, string) {
	tb.Helper()
	dir := tb.TempDir()
	touchTemplates(tb, dir, names...)
	v := New(exec, opts...)
	if err := v.AddDirectory(dir); err != nil {
		tb.Fatalf("AddDirectory() error = %v", err)
	}
	return v, canonical(tb, dir)
}
