package cli

import (
	"github.com/spf13/cobra"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/symbols"
)

func newSymbolsCmd(a *app) *cobra.Command {
	var (
		language string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "symbols <file>",
		Short: "List the functions and classes defined in a file",
		Long: `List the functions and classes defined in a source file, in source order.

Nested definitions (methods, inner functions) appear as separate entries.
Each entry has a 1-based line range, the first line of the definition as its
signature and, for Python, the docstring. With --max-chunk-size, symbols
whose source exceeds that many characters are split into line-aligned chunks.

Examples:
  # List symbols as JSON
  codesym symbols app.py

  # Include source text, split into chunks of at most 1500 characters
  codesym symbols --content --max-chunk-size 1500 server.go

  # Force a language for an unusual extension
  codesym symbols --language python build.star --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, map[string]string{
				config.KeyMaxChunkSize: "max-chunk-size",
				config.KeyContent:      "content",
				config.KeyFormat:       "format",
			})
			if err != nil {
				return err
			}

			syms, err := symbols.NewExtractor(a.cache).ExtractFile(args[0], symbols.Options{
				Language:     language,
				MaxChunkSize: cfg.MaxChunkSize,
				OmitContent:  !cfg.Content,
			})
			if err != nil {
				return err
			}
			return writeResult(cmd, output, cfg.Format, syms)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language override (detected from the extension by default)")
	cmd.Flags().Int("max-chunk-size", 0, "split symbols larger than this many characters (0 disables chunking)")
	cmd.Flags().Bool("content", false, "include each symbol's source text")
	cmd.Flags().String("format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	return cmd
}
