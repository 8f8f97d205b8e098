// Package scaffold writes starter projects for each template executor.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/isholao/viewctl/internal/config"
)

const (
	startersDir     = "starters"
	projectTemplate = "viewctl.yaml.tmpl"
	siteData        = "site.yaml"
)

//go:embed starters
var starters embed.FS

// ExistsError is returned when a starter file would overwrite an existing one.
type ExistsError struct {
	Paths []string
}

func (e *ExistsError) Error() string {
	if e == nil || len(e.Paths) == 0 {
		return "files already exist"
	}
	return fmt.Sprintf("refusing to overwrite existing files: %s", strings.Join(e.Paths, ", "))
}

// IsExists reports whether err is an ExistsError.
func IsExists(err error) bool {
	var target *ExistsError
	return errors.As(err, &target)
}

// Executors lists the executors a starter project exists for.
func Executors() []string {
	entries, err := starters.ReadDir(startersDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// Write creates a starter project for executorName in dir and returns the
// written paths. Existing files are only replaced when force is set; without
// it nothing is written if any target exists.
func Write(dir, executorName string, force bool) ([]string, error) {
	name := strings.ToLower(strings.TrimSpace(executorName))
	root := path.Join(startersDir, name)
	if _, err := fs.Stat(starters, root); err != nil {
		return nil, fmt.Errorf("no starter project for executor %q (available: %s)", executorName, strings.Join(Executors(), ", "))
	}

	files, err := collect(dir, root, name)
	if err != nil {
		return nil, err
	}

	targets := make([]string, 0, len(files))
	for target := range files {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	if !force {
		var existing []string
		for _, target := range targets {
			if _, err := os.Stat(target); err == nil {
				existing = append(existing, target)
			}
		}
		if len(existing) > 0 {
			return nil, &ExistsError{Paths: existing}
		}
	}

	for _, target := range targets {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("create directory for %q: %w", target, err)
		}
		if err := atomic.WriteFile(target, bytes.NewReader(files[target])); err != nil {
			return nil, fmt.Errorf("write %q: %w", target, err)
		}
	}
	return targets, nil
}

// collect maps every target path under dir to its content.
func collect(dir, root, executorName string) (map[string][]byte, error) {
	files := make(map[string][]byte)

	err := fs.WalkDir(starters, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := starters.ReadFile(p)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(p, root+"/")
		files[filepath.Join(dir, filepath.FromSlash(rel))] = raw
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read starter %q: %w", executorName, err)
	}

	data, err := starters.ReadFile(path.Join(startersDir, siteData))
	if err != nil {
		return nil, fmt.Errorf("read starter data: %w", err)
	}
	files[filepath.Join(dir, siteData)] = data

	raw, err := starters.ReadFile(path.Join(startersDir, projectTemplate))
	if err != nil {
		return nil, fmt.Errorf("read starter project file: %w", err)
	}
	project, err := config.RenderTemplate(config.DefaultFileName, raw, config.TemplateContext{
		ProjectRoot: dir,
		Now:         time.Now().UTC(),
		Vars:        map[string]string{"executor": executorName},
	})
	if err != nil {
		return nil, err
	}
	files[filepath.Join(dir, config.DefaultFileName)] = project

	return files, nil
}
