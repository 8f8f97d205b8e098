package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/isholao/viewctl/internal/config"
	"github.com/isholao/viewctl/internal/ghoutput"
)

// newRenderCommand creates the "render" subcommand that renders an entry template.
func newRenderCommand(opts *Options) *cobra.Command {
	var (
		flags   projectFlags
		output  string
		stdout  bool
		timeout string
	)

	cmd := &cobra.Command{
		Use:   "render [entry]",
		Short: "Render a template through its layout chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			project, err := loadProject(cmd, opts, &flags, config.Overrides{Output: output, Timeout: timeout})
			if err != nil {
				return err
			}
			res, err := renderProject(cmd.Context(), project, logger, entryArg(args))
			if err != nil {
				return err
			}

			outPath := project.ResolvePaths().Output
			if outPath == "" || stdout {
				_, err := io.WriteString(cmd.OutOrStdout(), res.Output)
				return err
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create output directory for %q: %w", outPath, err)
			}
			if err := atomic.WriteFile(outPath, strings.NewReader(res.Output)); err != nil {
				return fmt.Errorf("write rendered output to %q: %w", outPath, err)
			}

			size := len(res.Output)
			logger.Info("rendered template",
				"entry", res.Entry,
				"path", outPath,
				"size", humanize.Bytes(uint64(size)),
				"blocks", len(res.Blocks),
				"elapsed", res.Elapsed,
			)

			return ghoutput.Write(map[string]string{
				"output": outPath,
				"bytes":  strconv.Itoa(size),
			})
		},
	}

	addProjectFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (if empty, prints to stdout)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Force output to stdout even when an output file is configured")
	cmd.Flags().StringVar(&timeout, "timeout", "", "Abort the render after this duration (e.g. 30s)")

	return cmd
}

// newResolveCommand creates the "resolve" subcommand that prints the file a name resolves to.
func newResolveCommand(opts *Options) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Print the template file a name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			project, err := loadProject(cmd, opts, &flags, config.Overrides{})
			if err != nil {
				return err
			}
			path, err := newEngine(project, logger).Resolve(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	addProjectFlags(cmd, &flags)
	return cmd
}
