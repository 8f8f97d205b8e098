package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/isholao/viewctl/internal/config"
)

// newBlocksCommand creates the "blocks" subcommand that prints the captured block store.
func newBlocksCommand(opts *Options) *cobra.Command {
	var (
		flags projectFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "blocks [entry]",
		Short: "Render a template and print its named blocks as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			project, err := loadProject(cmd, opts, &flags, config.Overrides{})
			if err != nil {
				return err
			}
			res, err := renderProject(cmd.Context(), project, logger, entryArg(args))
			if err != nil {
				return err
			}

			if name != "" {
				body, ok := res.Blocks[name]
				if !ok {
					return fmt.Errorf("block %q was not captured (captured: %v)", name, res.BlockNames())
				}
				_, err := io.WriteString(cmd.OutOrStdout(), body)
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(res.Blocks); err != nil {
				_ = enc.Close()
				return fmt.Errorf("encode blocks: %w", err)
			}
			return enc.Close()
		},
	}

	addProjectFlags(cmd, &flags)
	cmd.Flags().StringVar(&name, "name", "", "Print only this block, unformatted")
	return cmd
}
