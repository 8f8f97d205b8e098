package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/isholao/viewctl/internal/config"
	"github.com/isholao/viewctl/internal/datasrc"
	"github.com/isholao/viewctl/internal/engine"
	"github.com/isholao/viewctl/internal/logging"
)

// projectFlags are the flags every project-aware command accepts.
type projectFlags struct {
	dirs      []string
	dataFiles []string
	vars      string
	executor  string
	ext       string
	maxDepth  int
}

func addProjectFlags(cmd *cobra.Command, f *projectFlags) {
	cmd.Flags().StringArrayVar(&f.dirs, "dir", nil, "Template directory searched before the project directories (repeatable)")
	cmd.Flags().StringArrayVar(&f.dataFiles, "data", nil, "YAML/TOML/JSON/.env data file merged into the template data (repeatable)")
	cmd.Flags().StringVar(&f.vars, "vars", "", "Additional variables in k=v,k2=v2 format")
	cmd.Flags().StringVar(&f.executor, "executor", "", fmt.Sprintf("Template executor (one of %s)", executorNames()))
	cmd.Flags().StringVar(&f.ext, "ext", "", "Template file extension (defaults to the executor's)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum layout chain depth; negative disables the check")
}

// loadProject loads the project file and layers env and flag overrides on
// top, in that order.
func loadProject(cmd *cobra.Command, opts *Options, f *projectFlags, extra config.Overrides) (*config.Project, error) {
	var envs projectEnv
	if err := parseEnv(&envs); err != nil {
		return nil, err
	}
	envVars, err := datasrc.ParseInline(envs.Vars)
	if err != nil {
		return nil, fmt.Errorf("VIEWCTL_VARS: %w", err)
	}
	flagVars, err := datasrc.ParseInline(f.vars)
	if err != nil {
		return nil, fmt.Errorf("--vars: %w", err)
	}

	project, err := config.Load(opts.ConfigPath, config.LoadOptions{
		Vars:         stringVars(datasrc.Merge(envVars, flagVars)),
		AllowMissing: !opts.explicitConfig,
	})
	if err != nil {
		return nil, err
	}

	project.Apply(config.Overrides{
		Executor:    envs.Executor,
		Extension:   envs.Extension,
		Directories: envs.Dirs,
		MaxDepth:    envs.MaxDepth,
		DataFiles:   envs.DataFiles,
		Data:        envVars,
	})

	extra.Executor = f.executor
	extra.Extension = f.ext
	extra.Directories = f.dirs
	extra.DataFiles = f.dataFiles
	extra.Data = flagVars
	if cmd.Flags().Changed("max-depth") {
		extra.MaxDepth = f.maxDepth
	}
	project.Apply(extra)

	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", describeSource(project), err)
	}
	return project, nil
}

// renderProject renders entry (or the project entry) within the project
// timeout.
func renderProject(ctx context.Context, project *config.Project, logger *slog.Logger, entry string) (*engine.Result, error) {
	limit, err := project.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, limit)
	defer cancel()
	return newEngine(project, logger).Render(ctx, engine.RenderOptions{Entry: entry})
}

func newEngine(project *config.Project, logger *slog.Logger) *engine.Engine {
	return engine.NewEngine(project,
		engine.WithLogger(logger),
		engine.WithDebugWriter(logging.NewWriter(logger, "template debug")),
	)
}

func stringVars(data datasrc.Data) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func describeSource(project *config.Project) string {
	if project.Source == "" {
		return "(defaults)"
	}
	return project.Source
}
