// Package config contains the loader and strongly typed model for viewctl.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/isholao/viewctl/internal/datasrc"
	"github.com/isholao/viewctl/pkg/executor"
)

const (
	// DefaultFileName is the project file looked up when no path is given.
	DefaultFileName = "viewctl.yaml"
	// DefaultExecutor is used when the project names none.
	DefaultExecutor = executor.NameText
)

// Project describes how templates of one project are located and rendered.
// It mirrors the structure of viewctl.yaml after template rendering.
type Project struct {
	// Executor selects the template engine (text, html, handlebars).
	Executor string `yaml:"executor,omitempty"`
	// Extension overrides the executor's default template extension.
	Extension string `yaml:"extension,omitempty"`
	// Directories lists template search directories in priority order.
	Directories []string `yaml:"directories,omitempty"`
	// InheritDirectories lets partials search the enclosing view's directories.
	InheritDirectories bool `yaml:"inheritDirectories,omitempty"`
	// Entry is the template rendered when none is given on the command line.
	Entry string `yaml:"entry,omitempty"`
	// MaxDepth caps the layout chain; 0 keeps the default, negative disables it.
	MaxDepth int `yaml:"maxDepth,omitempty"`
	// DataFiles lists YAML/TOML/JSON/.env files merged into the template data.
	DataFiles []string `yaml:"dataFiles,omitempty"`
	// Data holds inline template data; it overrides DataFiles.
	Data map[string]any `yaml:"data,omitempty"`
	// EnvPrefix exposes environment variables with this prefix as data.
	EnvPrefix string `yaml:"envPrefix,omitempty"`
	// Output is the default output file; empty means stdout.
	Output string `yaml:"output,omitempty"`
	// Timeout bounds a render (e.g. "30s").
	Timeout string `yaml:"timeout,omitempty"`

	// Root is the directory relative paths resolve against.
	Root string `yaml:"-"`
	// Source is the project file the values were read from, if any.
	Source string `yaml:"-"`
}

// LoadOptions holds inputs used while rendering the project file.
type LoadOptions struct {
	// Vars are inline user variables exposed to the project template.
	Vars map[string]string
	// AllowMissing returns a default project when the file does not exist.
	AllowMissing bool
}

// TemplateContext is the data the project file is rendered with.
type TemplateContext struct {
	// ProjectRoot is the directory containing the project file.
	ProjectRoot string
	// Now is the timestamp captured for template rendering.
	Now time.Time
	// Vars contains inline user variables.
	Vars map[string]string
	// EnvMap merges the OS environment and user variables.
	EnvMap map[string]string
}

// Default returns a project rooted at root with default settings.
func Default(root string) *Project {
	p := &Project{Root: root}
	p.applyDefaults()
	return p
}

// Load reads path, renders it as a template and parses the result.
func Load(path string, opts LoadOptions) (*Project, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && opts.AllowMissing {
			return Default(filepath.Dir(absPath)), nil
		}
		return nil, fmt.Errorf("read config %q: %w", absPath, err)
	}

	ctx := TemplateContext{
		ProjectRoot: filepath.Dir(absPath),
		Now:         time.Now().UTC(),
		Vars:        opts.Vars,
		EnvMap:      envMap(opts.Vars),
	}
	rendered, err := RenderTemplate(filepath.Base(absPath), raw, ctx)
	if err != nil {
		return nil, err
	}

	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(rendered))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse rendered %s: %w", filepath.Base(absPath), err)
	}
	p.Root = ctx.ProjectRoot
	p.Source = absPath
	p.applyDefaults()
	return &p, nil
}

// RenderTemplate renders raw with the project template helpers.
func RenderTemplate(name string, raw []byte, ctx TemplateContext) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(buildFuncMap(ctx)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (p *Project) applyDefaults() {
	if strings.TrimSpace(p.Executor) == "" {
		p.Executor = DefaultExecutor
	}
	if len(p.Directories) == 0 {
		p.Directories = []string{"."}
	}
}

// Validate reports configuration values that cannot work.
func (p *Project) Validate() error {
	var errs []error
	if _, err := executor.New(p.Executor); err != nil {
		errs = append(errs, err)
	}
	if p.Timeout != "" {
		if _, err := p.TimeoutDuration(); err != nil {
			errs = append(errs, err)
		}
	}
	for i, dir := range p.Directories {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("directories[%d] is empty", i))
		}
	}
	for _, file := range p.DataFiles {
		if !isDataFile(file) {
			errs = append(errs, fmt.Errorf("data file %q has an unsupported format", file))
		}
	}
	return errors.Join(errs...)
}

// TimeoutDuration parses Timeout; an empty value means no timeout.
func (p *Project) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(p.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", p.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", p.Timeout)
	}
	return d, nil
}

func isDataFile(path string) bool {
	base := filepath.Base(path)
	if base == ".env" || strings.HasSuffix(base, ".env") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, f := range datasrc.Formats {
		if ext == f {
			return true
		}
	}
	return false
}

func envMap(vars map[string]string) map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// buildFuncMap layers the project file helpers over the shared text helpers:
// envOr sees the vars, var reads them and now is fixed per load.
func buildFuncMap(ctx TemplateContext) template.FuncMap {
	funcs := template.FuncMap(executor.TextFuncs())
	funcs["envOr"] = funcEnvOr(ctx.EnvMap)
	funcs["var"] = funcVar(ctx.Vars)
	funcs["now"] = func() time.Time { return ctx.Now }
	return funcs
}

// funcEnvOr returns a helper that looks up a key in envMap and falls back to def.
func funcEnvOr(envMap map[string]string) func(key, def string) string {
	return func(key, def string) string {
		if v, ok := envMap[key]; ok && v != "" {
			return v
		}
		return def
	}
}

func funcVar(vars map[string]string) func(key string) string {
	return func(key string) string {
		return vars[key]
	}
}

