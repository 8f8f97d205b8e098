package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeProject(tb testing.TB, body string) string {
	tb.Helper()
	dir := tb.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		tb.Fatalf("write project: %v", err)
	}
	return path
}

func TestLoadRendersTemplate(t *testing.T) {
	t.Setenv("VIEWCTL_TEST_THEME", "dark")
	path := writeProject(t, `
executor: {{ default (var "engine") "html" }}
directories:
  - themes/{{ envOr "VIEWCTL_TEST_THEME" "light" }}
  - templates
entry: {{ slug "Home Page" }}
maxDepth: 8
inheritDirectories: true
dataFiles: [site.yaml]
data:
  title: Docs
  label: {{ toUpper (var "engine") }}
timeout: 30s
`)

	p, err := Load(path, LoadOptions{Vars: map[string]string{"engine": "handlebars"}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Executor != "handlebars" {
		t.Errorf("Executor = %q, want handlebars", p.Executor)
	}
	if want := []string{"themes/dark", "templates"}; !reflect.DeepEqual(p.Directories, want) {
		t.Errorf("Directories = %v, want %v", p.Directories, want)
	}
	if p.Entry != "home-page" || p.MaxDepth != 8 || !p.InheritDirectories {
		t.Errorf("unexpected project %+v", p)
	}
	if p.Data["title"] != "Docs" || p.Data["label"] != "HANDLEBARS" {
		t.Errorf("Data = %v", p.Data)
	}
	if p.Root != filepath.Dir(path) || p.Source != path {
		t.Errorf("Root/Source = %q/%q", p.Root, p.Source)
	}
	if d, err := p.TimeoutDuration(); err != nil || d != 30*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v", d, err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	p, err := Load(writeProject(t, ""), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Executor != DefaultExecutor || !reflect.DeepEqual(p.Directories, []string{"."}) {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	if _, err := Load(path, LoadOptions{}); err == nil {
		t.Fatal("Load() of missing file expected error")
	}

	p, err := Load(path, LoadOptions{AllowMissing: true})
	if err != nil {
		t.Fatalf("Load(AllowMissing) error = %v", err)
	}
	if p.Root != filepath.Dir(path) || p.Source != "" {
		t.Errorf("default project Root/Source = %q/%q", p.Root, p.Source)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown field", body: "executr: text\n", want: "executr"},
		{name: "bad template", body: "entry: {{ .Nope }}\n", want: "render template"},
		{name: "bad yaml", body: "directories: [a\n", want: "parse rendered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProject(t, tt.body), LoadOptions{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	p := Default(t.TempDir())
	p.Executor = "jinja"
	p.Timeout = "soon"
	p.Directories = []string{"ok", " "}
	p.DataFiles = []string{"site.ini"}

	err := p.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"jinja", "soon", "directories[1]", "site.ini"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err, want)
		}
	}
}

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "shared")
	p := &Project{
		Root:        root,
		Directories: []string{"templates", "", abs, "./templates"},
		DataFiles:   []string{"a.yaml", "a.yaml"},
		Output:      "out/index.html",
	}

	got := p.ResolvePaths()
	want := ResolvedPaths{
		Directories: []string{filepath.Join(root, "templates"), abs},
		DataFiles:   []string{filepath.Join(root, "a.yaml")},
		Output:      filepath.Join(root, "out/index.html"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolvePaths() = %+v, want %+v", got, want)
	}
}

func TestApplyOverrides(t *testing.T) {
	p := Default("/project")
	p.Directories = []string{"templates"}
	p.DataFiles = []string{"site.yaml"}
	p.Data = map[string]any{"title": "A", "lang": "en"}

	p.Apply(Overrides{
		Executor:    "html",
		Directories: []string{"/extra"},
		DataFiles:   []string{"/more.json"},
		Data:        map[string]any{"title": "B"},
		MaxDepth:    -1,
	})

	if p.Executor != "html" || p.MaxDepth != -1 {
		t.Errorf("scalar overrides not applied: %+v", p)
	}
	if want := []string{"/extra", "templates"}; !reflect.DeepEqual(p.Directories, want) {
		t.Errorf("Directories = %v, want %v", p.Directories, want)
	}
	if want := []string{"site.yaml", "/more.json"}; !reflect.DeepEqual(p.DataFiles, want) {
		t.Errorf("DataFiles = %v, want %v", p.DataFiles, want)
	}
	if p.Data["title"] != "B" || p.Data["lang"] != "en" {
		t.Errorf("Data = %v", p.Data)
	}

	p.Apply(Overrides{})
	if p.Executor != "html" || p.Entry != "" {
		t.Errorf("empty overrides changed the project: %+v", p)
	}
}
