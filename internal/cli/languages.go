package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List detectable languages and their file extensions",
		Long: `List every language reachable through file-extension detection, its
extensions and whether a grammar is compiled in. Languages without a
grammar are detected but fail to parse.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			byLang := map[lang.Language][]string{}
			for ext, l := range lang.Extensions() {
				byLang[l] = append(byLang[l], "."+ext)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LANGUAGE\tGRAMMAR\tEXTENSIONS")
			for _, l := range lang.KnownLanguages() {
				exts := byLang[l]
				sort.Strings(exts)
				grammar := "no"
				if parser.HasGrammar(l) {
					grammar = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l, grammar, strings.Join(exts, " "))
			}
			return tw.Flush()
		},
	}
}
