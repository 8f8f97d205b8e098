package executor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isholao/viewctl/pkg/view"
)

func writeTemplates(tb testing.TB, files map[string]string) string {
	tb.Helper()
	dir := tb.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			tb.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func render(tb testing.TB, exec view.Executor, dir, entry string, data map[string]any) (*view.View, string, error) {
	tb.Helper()
	v := view.New(exec)
	if err := v.AddDirectory(dir); err != nil {
		tb.Fatalf("AddDirectory() error = %v", err)
	}
	v.Populate(data)
	if err := v.SetEntry(entry); err != nil {
		tb.Fatalf("SetEntry(%q) error = %v", entry, err)
	}
	out, err := v.Render()
	return v, out, err
}

func TestRegistry(t *testing.T) {
	if got := strings.Join(Names(), ","); got != "handlebars,html,text" {
		t.Errorf("Names() = %s", got)
	}

	exec, err := New(" TEXT ")
	if err != nil {
		t.Fatalf("New(TEXT) error = %v", err)
	}
	if exec.Name() != NameText || exec.Extension() != ".tpl" {
		t.Errorf("New(TEXT) = %s/%s", exec.Name(), exec.Extension())
	}

	_, err = New("jinja")
	var unknown *UnknownExecutorError
	if !errors.As(err, &unknown) || unknown.Name != "jinja" {
		t.Fatalf("New(jinja) error = %v, want UnknownExecutorError", err)
	}
	if !strings.Contains(err.Error(), "handlebars") {
		t.Errorf("error %q should list the available executors", err)
	}
}

func TestTextLayoutChain(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"home.tpl":   `{{extends "layout"}}{{beginBlock "scripts"}}<home.js>{{endBlock}}Hello {{.name}}`,
		"layout.tpl": `{{extends "base"}}{{beginBlock "scripts"}}<layout.js>{{endBlock}}[{{content}}]`,
		"base.tpl":   `<body>{{content}}{{getBlock "scripts"}}</body>`,
	})

	v, got, err := render(t, NewText(), dir, "home", map[string]any{"name": "gopher"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "<body>[Hello gopher]<home.js><layout.js></body>"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if !v.HasBlock("scripts") {
		t.Errorf("block store should stay readable after Render")
	}
}

func TestTextHelpers(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"page.tpl": `{{shout "hi"}} {{call "Shout" "there"}} {{slug "Hello World"}} ` +
			`{{default .missing "none"}} {{if hasBlock "x"}}x{{else}}no-x{{end}}` +
			`{{set "seen" "yes"}} {{get "seen"}} {{get "year"}}`,
	})

	_, got, err := render(t, NewText(), dir, "page", map[string]any{
		"missing": "",
		"Shout":   func(s string) string { return strings.ToUpper(s) + "!" },
		"Year":    func() int { return 2024 },
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "HI! THERE! hello-world none no-x yes 2024"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTextPartial(t *testing.T) {
	partials := writeTemplates(t, map[string]string{
		"nav.tpl": `<nav>{{.item}}{{if has "title"}}!{{end}}</nav>`,
	})
	dir := writeTemplates(t, map[string]string{
		"page.tpl": `{{.title}}{{partial "nav" .dir .items}}`,
	})

	_, got, err := render(t, NewText(), dir, "page", map[string]any{
		"title": "T",
		"dir":   partials,
		"items": map[string]any{"item": "Docs"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "T<nav>Docs</nav>"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTextErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(error) bool
	}{
		{name: "missing parent", body: `{{extends "nowhere"}}`, check: view.IsTemplateNotFound},
		{name: "unclosed block", body: `{{beginBlock "a"}}x`, check: view.IsUnclosedBlock},
		{name: "end without begin", body: `{{endBlock}}`, check: func(err error) bool { return errors.Is(err, view.ErrNoOpenBlock) }},
		{name: "unknown closure", body: `{{call "nope"}}`, check: view.IsUnknownMember},
		{name: "parse error", body: `{{if}}`, check: func(err error) bool { return err != nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTemplates(t, map[string]string{"page.tpl": tt.body})
			_, out, err := render(t, NewText(), dir, "page", nil)
			if !tt.check(err) {
				t.Fatalf("Render() error = %v", err)
			}
			if out != "" {
				t.Errorf("Render() output = %q on failure, want empty", out)
			}
		})
	}
}

func TestTextDebugWriter(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"page.tpl": `a{{debug "checkpoint" 1}}b`})
	var buf bytes.Buffer

	_, got, err := render(t, NewText(WithDebugWriter(&buf)), dir, "page", nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "ab" {
		t.Errorf("Render() = %q, want ab", got)
	}
	if !strings.Contains(buf.String(), "checkpoint") || !strings.Contains(buf.String(), "page.tpl") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestWithFuncsOverridesBuiltin(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"page.tpl": `{{slug "A B"}}`})
	exec := NewText(WithFuncs(map[string]any{"slug": func(s string) string { return "custom" }}))

	_, got, err := render(t, exec, dir, "page", nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "custom" {
		t.Errorf("Render() = %q, want custom", got)
	}
}

func TestWithFuncsRejectsInvalidHelpers(t *testing.T) {
	tests := []struct {
		name  string
		funcs map[string]any
	}{
		{name: "not a function", funcs: map[string]any{"site": "viewctl"}},
		{name: "nil function", funcs: map[string]any{"noop": (func() string)(nil)}},
		{name: "no result", funcs: map[string]any{"noop": func() {}}},
		{name: "second result not error", funcs: map[string]any{"pair": func() (int, int) { return 1, 2 }}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range Names() {
				if _, err := New(name, WithFuncs(tt.funcs)); !IsInvalidFunc(err) {
					t.Errorf("New(%s) error = %v, want InvalidFuncError", name, err)
				}
			}

			dir := writeTemplates(t, map[string]string{"page.hbs": `page`})
			_, out, err := render(t, NewHandlebars(WithFuncs(tt.funcs)), dir, "page", nil)
			if !IsInvalidFunc(err) {
				t.Fatalf("Render() error = %v, want InvalidFuncError", err)
			}
			if out != "" {
				t.Errorf("Render() = %q on failure, want empty", out)
			}
		})
	}
}

func TestHTMLEscaping(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"home.html":   `{{extends "layout"}}{{beginBlock "head"}}<script src="a.js"></script>{{endBlock}}<p>{{.title}}</p>`,
		"layout.html": `<head>{{getBlock "head"}}</head><main>{{content}}</main>`,
	})

	_, got, err := render(t, NewHTML(), dir, "home", map[string]any{"title": "<b>"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `<head><script src="a.js"></script></head><main><p>&lt;b&gt;</p></main>`
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestHandlebarsLayoutChain(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"home.hbs":   `{{extends "layout"}}{{#capture "scripts"}}<home.js>{{/capture}}Hi {{uppercase name}}`,
		"layout.hbs": `<body>{{content}}{{getBlock "scripts"}}{{#if (hasBlock "none")}}?{{/if}}</body>`,
	})

	_, got, err := render(t, NewHandlebars(), dir, "home", map[string]any{"name": "gopher"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "<body>Hi GOPHER<home.js></body>"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestHandlebarsPartialAndCall(t *testing.T) {
	partials := writeTemplates(t, map[string]string{"nav.hbs": `<nav>{{item}}{{secret}}{{dir}}</nav>`})
	dir := writeTemplates(t, map[string]string{
		"page.hbs": `{{partial "nav" dir=dir item=label}}|{{call "Wrap" "x"}}|{{year}}|{{get "year"}}`,
	})

	_, got, err := render(t, NewHandlebars(), dir, "page", map[string]any{
		"dir":    partials,
		"label":  "Docs",
		"secret": "parent-only",
		"wrap": func(s string) string { return "(" + s + ")" },
		"Year": func() int { return 2024 },
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "<nav>Docs</nav>|(x)|2024|2024"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestHandlebarsHelperFailure(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"page.hbs": `before{{extends "nowhere"}}`})

	_, out, err := render(t, NewHandlebars(), dir, "page", nil)
	if err == nil {
		t.Fatal("Render() expected error for missing parent")
	}
	if out != "" {
		t.Errorf("Render() output = %q on failure, want empty", out)
	}
}

func TestHandlebarsEqUncomparableValues(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"page.hbs": `{{#if (eq a b)}}same{{else}}diff{{/if}} {{#if (eq a c)}}same{{else}}diff{{/if}}`,
	})

	_, got, err := render(t, NewHandlebars(), dir, "page", map[string]any{
		"a": map[string]any{"k": []any{1}},
		"b": map[string]any{"k": []any{1}},
		"c": map[string]any{"k": []any{2}},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "same diff" {
		t.Errorf("Render() = %q, want %q", got, "same diff")
	}
}
