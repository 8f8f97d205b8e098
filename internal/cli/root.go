// Package cli defines the command-line interface for viewctl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/isholao/viewctl/internal/config"
	"github.com/isholao/viewctl/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	LogLevel   logging.Level

	// explicitConfig is set when the config path came from a flag or the
	// environment; a missing file is then an error.
	explicitConfig bool
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: config.DefaultFileName,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "viewctl",
		Short:         "viewctl renders file templates through layout chains",
		Long:          "viewctl resolves templates against ordered search directories, renders them through parent layouts and collects named blocks, driven by an optional viewctl.yaml project file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var envs baseEnv
			if err := parseEnv(&envs); err != nil {
				return err
			}

			levelText := cmd.Flag("log-level").Value.String()
			if !cmd.Flags().Changed("log-level") && envs.LogLevel != "" {
				levelText = envs.LogLevel
			}
			if !cmd.Flags().Changed("config") && envs.ConfigPath != "" {
				opts.ConfigPath = envs.ConfigPath
			}
			opts.explicitConfig = cmd.Flags().Changed("config") || envs.ConfigPath != ""

			level := logging.ParseLevel(levelText)
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level, "config", opts.ConfigPath)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultFileName, "Path to viewctl.yaml project file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRenderCommand(opts),
		newResolveCommand(opts),
		newBlocksCommand(opts),
		newDoctorCommand(opts),
		newInitCommand(),
	)

	// Commands run through Execute get the caller's logger until the
	// persistent pre-run replaces it.
	cmd.SetContext(context.WithValue(context.Background(), loggerKey{}, logger))

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
