package config

import (
	"path/filepath"
	"strings"
)

// Overrides carries values from the environment or command-line flags.
// Zero values leave the project setting untouched.
type Overrides struct {
	Executor    string
	Extension   string
	Directories []string
	Entry       string
	MaxDepth    int
	DataFiles   []string
	Data        map[string]any
	Output      string
	Timeout     string
}

// Apply layers o over the project. Directories and data files given as
// overrides are searched or merged before the project's own; relative
// override paths are taken as they are, against the working directory.
func (p *Project) Apply(o Overrides) {
	if s := strings.TrimSpace(o.Executor); s != "" {
		p.Executor = s
	}
	if s := strings.TrimSpace(o.Extension); s != "" {
		p.Extension = s
	}
	if len(o.Directories) > 0 {
		p.Directories = append(absAll(o.Directories), p.Directories...)
	}
	if s := strings.TrimSpace(o.Entry); s != "" {
		p.Entry = s
	}
	if o.MaxDepth != 0 {
		p.MaxDepth = o.MaxDepth
	}
	if len(o.DataFiles) > 0 {
		p.DataFiles = append(p.DataFiles, absAll(o.DataFiles)...)
	}
	if len(o.Data) > 0 {
		if p.Data == nil {
			p.Data = make(map[string]any, len(o.Data))
		}
		for k, v := range o.Data {
			p.Data[k] = v
		}
	}
	if s := strings.TrimSpace(o.Output); s != "" {
		p.Output = absPath(s)
	}
	if s := strings.TrimSpace(o.Timeout); s != "" {
		p.Timeout = s
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func absAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if path = strings.TrimSpace(path); path != "" {
			out = append(out, absPath(path))
		}
	}
	return out
}
