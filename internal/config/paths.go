package config

import (
	"path/filepath"
	"strings"
)

// ResolvedPaths is the normalized, root-relative view of a project's paths.
type ResolvedPaths struct {
	// Directories are the template search directories in priority order.
	Directories []string
	// DataFiles are the data files in merge order.
	DataFiles []string
	// Output is the output file, or "" for stdout.
	Output string
}

// ResolvePaths joins relative paths onto Root and drops blanks and duplicates,
// keeping first occurrences.
func (p *Project) ResolvePaths() ResolvedPaths {
	return ResolvedPaths{
		Directories: dedupe(p.resolveAll(p.Directories)),
		DataFiles:   dedupe(p.resolveAll(p.DataFiles)),
		Output:      p.Resolve(p.Output),
	}
}

// Resolve joins a relative path onto Root. Blank input yields "".
func (p *Project) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) || p.Root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

func (p *Project) resolveAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if r := p.Resolve(path); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
