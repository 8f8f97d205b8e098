package view

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is appended to template names that carry no extension of their own.
const DefaultExtension = ".tpl"

// Resolver turns logical template names into concrete file paths by looking
// through an ordered set of search directories.
type Resolver struct {
	ext  string
	dirs []string
	seen map[string]struct{}
}

// NewResolver constructs a Resolver for the given extension.
// An empty extension selects DefaultExtension.
func NewResolver(ext string) *Resolver {
	return &Resolver{
		ext:  normalizeExt(ext),
		seen: make(map[string]struct{}),
	}
}

// Extension returns the extension appended to bare names.
func (r *Resolver) Extension() string {
	return r.ext
}

// Directories returns the registered search directories in registration order.
func (r *Resolver) Directories() []string {
	out := make([]string, len(r.dirs))
	copy(out, r.dirs)
	return out
}

// AddDirectory validates and registers a search directory. The path is made
// absolute and symlinks are evaluated; registering the same directory twice
// keeps its first position.
func (r *Resolver) AddDirectory(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &InvalidDirectoryError{Path: path, Err: err}
	}
	clean, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return &InvalidDirectoryError{Path: path, Err: err}
	}
	info, err := os.Stat(clean)
	if err != nil {
		return &InvalidDirectoryError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return &InvalidDirectoryError{Path: path}
	}

	if _, ok := r.seen[clean]; ok {
		return nil
	}
	r.seen[clean] = struct{}{}
	r.dirs = append(r.dirs, clean)
	return nil
}

// AddDirectories registers each path in order and stops at the first invalid one.
// Directories registered before the failure stay registered.
func (r *Resolver) AddDirectories(paths []string) error {
	for _, p := range paths {
		if err := r.AddDirectory(p); err != nil {
			return err
		}
	}
	return nil
}

// Resolve locates the file for name. A name that is already a loadable file
// is returned as is; otherwise the search directories are tried in
// registration order and the first existing match wins.
func (r *Resolver) Resolve(name string) (string, error) {
	file := r.withExtension(name)

	if isFile(file) {
		return file, nil
	}

	searched := make([]string, 0, len(r.dirs))
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, file)
		if isFile(candidate) {
			return candidate, nil
		}
		searched = append(searched, candidate)
	}
	return "", &TemplateNotFoundError{Name: file, Searched: searched}
}

func (r *Resolver) withExtension(name string) string {
	if strings.HasSuffix(name, r.ext) {
		return name
	}
	return name + r.ext
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
