package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/isholao/viewctl/internal/config"
	"github.com/isholao/viewctl/internal/datasrc"
	"github.com/isholao/viewctl/pkg/executor"
	"github.com/isholao/viewctl/pkg/view"
)

// newDoctorCommand creates the "doctor" subcommand that checks a project without rendering it.
func newDoctorCommand(opts *Options) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "doctor [entry]",
		Short: "Check search directories, entry resolution and data files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			project, err := loadProject(cmd, opts, &flags, config.Overrides{Entry: entryArg(args)})
			if err != nil {
				return err
			}

			if problems := runDoctorChecks(logger, project); problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			logger.Info("doctor checks completed successfully", "project", describeSource(project))
			return nil
		},
	}

	addProjectFlags(cmd, &flags)
	return cmd
}

// runDoctorChecks logs every check and returns the number of failures.
func runDoctorChecks(logger *slog.Logger, project *config.Project) int {
	if logger == nil {
		logger = slog.Default()
	}
	paths := project.ResolvePaths()
	problems := 0

	ext := project.Extension
	if ext == "" {
		// Validate already rejected unknown executors.
		if exec, err := executor.New(project.Executor); err == nil {
			ext = exec.Extension()
		}
	}
	resolver := view.NewResolver(ext)
	for _, dir := range paths.Directories {
		if err := resolver.AddDirectory(dir); err != nil {
			logger.Error("doctor check failed: template directory", "dir", dir, "error", err)
			problems++
			continue
		}
		logger.Info("doctor check ok", "dir", dir)
	}

	if project.Entry == "" {
		logger.Warn("no entry template configured; skipping resolution check")
	} else if path, err := resolver.Resolve(project.Entry); err != nil {
		logger.Error("doctor check failed: entry template", "entry", project.Entry, "error", err)
		problems++
	} else {
		logger.Info("doctor check ok", "entry", project.Entry, "path", path)
	}

	for _, file := range paths.DataFiles {
		data, err := datasrc.Load(file)
		if err != nil {
			logger.Error("doctor check failed: data file", "file", file, "error", err)
			problems++
			continue
		}
		var size string
		if info, err := os.Stat(file); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		logger.Info("doctor check ok", "file", file, "keys", len(data), "size", size)
	}

	return problems
}
