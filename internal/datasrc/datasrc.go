// Package datasrc loads template data from files, inline lists and the
// process environment.
package datasrc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data is a set of template variables.
type Data map[string]any

// Formats lists the file extensions Load understands.
var Formats = []string{".yaml", ".yml", ".toml", ".env", ".json"}

// Merge merges several Data maps into one, later maps overriding earlier keys.
// Nested maps are replaced, not merged.
func Merge(sets ...Data) Data {
	out := make(Data)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// FromOS returns the environment variables starting with prefix, keyed by
// the remainder of their name. An empty prefix returns nothing.
func FromOS(prefix string) Data {
	out := make(Data)
	if prefix == "" {
		return out
	}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		if name := strings.TrimPrefix(key, prefix); name != "" {
			out[name] = value
		}
	}
	return out
}

// Load reads a data file, choosing the decoder by extension. ".env" also
// matches files named ".env" or "*.env".
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	out := make(Data)
	switch format(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(raw), &out); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case ".env":
		envMap, err := godotenv.Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse env: %w", err)
		}
		for k, v := range envMap {
			out[k] = v
		}
	default:
		return nil, fmt.Errorf("unsupported data file format %q (supported: %s)", filepath.Ext(path), strings.Join(Formats, ", "))
	}
	if out == nil {
		out = make(Data)
	}
	return out, nil
}

// LoadFiles loads several data files and merges them in order. Relative
// paths are resolved against baseDir.
func LoadFiles(baseDir string, files []string) (Data, error) {
	result := make(Data)
	for _, name := range files {
		if name == "" {
			continue
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, name)
		}
		data, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("load data file %q: %w", path, err)
		}
		result = Merge(result, data)
	}
	return result, nil
}

// ParseInline parses a comma-separated k=v list (e.g. "A=1,B=2").
func ParseInline(s string) (Data, error) {
	out := make(Data)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid inline var %q, expected key=value", part)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key in inline var %q", part)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

func format(path string) string {
	base := filepath.Base(path)
	if base == ".env" || strings.HasSuffix(base, ".env") {
		return ".env"
	}
	return strings.ToLower(filepath.Ext(base))
}
