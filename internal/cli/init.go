package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isholao/viewctl/internal/scaffold"
	"github.com/isholao/viewctl/pkg/executor"
)

// newInitCommand creates the "init" subcommand that writes a starter project.
func newInitCommand() *cobra.Command {
	var (
		execName string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter project with a layout, a page and a partial",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			written, err := scaffold.Write(dir, execName, force)
			if err != nil {
				return err
			}
			for _, path := range written {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			logger.Info("starter project created", "dir", dir, "executor", execName, "files", len(written))
			return nil
		},
	}

	cmd.Flags().StringVar(&execName, "executor", executor.NameText, fmt.Sprintf("Template executor (one of %s)", executorNames()))
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}
