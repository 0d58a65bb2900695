package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/query"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		language string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "query <file> <pattern>",
		Short: "Run a tree-sitter query against a file",
		Long: `Run a raw tree-sitter query against a file's syntax tree and print every
match with its pattern index and captures. Pass "-" as the pattern to read
it from stdin.

Examples:
  codesym query app.py '(function_definition name: (identifier) @name)'

  codesym query main.go - < calls.scm`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, map[string]string{
				config.KeyFormat: "format",
			})
			if err != nil {
				return err
			}

			pattern := args[1]
			if pattern == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read pattern: %w", err)
				}
				pattern = string(b)
			}

			matches, err := query.NewExecutor(a.cache).RunFile(args[0], pattern, language)
			if err != nil {
				return err
			}
			return writeResult(cmd, output, cfg.Format, matches)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language override (detected from the extension by default)")
	cmd.Flags().String("format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	return cmd
}
