package cli

import (
	"github.com/spf13/cobra"

	"github.com/DeusData/codesym/internal/scan"
)

func newOutlineCmd(a *app) *cobra.Command {
	var (
		output   string
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "outline [root]",
		Short: "Print a markdown outline of a directory",
		Long: `Print one "## path (language)" heading per file and one line per function
or class with its line range. Equivalent to "codesym scan --outline".

Example:
  codesym outline ./src --include '**/*.py'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, scanBindings)
			if err != nil {
				return err
			}
			sess, err := a.openScan(cfg, rootArg(args), scan.Options{OmitContent: true})
			if err != nil {
				return err
			}
			defer sess.Close()

			return sess.runAndWatch(cmd.Context(), watching, func(reports []scan.FileReport) error {
				return writeText(cmd, output, scan.RenderOutline(reports))
			})
		},
	}

	addScanFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the outline to this file instead of stdout")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "keep running and rewrite the outline when files change")
	return cmd
}
