// Package cli implements the codesym command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/parser"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	version string
	v       *viper.Viper
	cache   *parser.Cache

	cfgFile string
	verbose bool
}

// NewRootCmd builds the codesym command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{
		version: version,
		v:       viper.New(),
		cache:   parser.NewCache(),
	}

	rootCmd := &cobra.Command{
		Use:   "codesym",
		Short: "Extract functions and classes from source code with tree-sitter",
		Long: `codesym parses source files with tree-sitter and lists the functions and
classes they define, with line ranges, signatures and optional chunked
source text. It can also run raw tree-sitter queries, scan whole directory
trees, render markdown outlines and serve all of this over MCP.

Settings come from flags, CODESYM_* environment variables, a YAML config
file (--config, or .codesym.yaml in the working or home directory) and
built-in defaults, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), a.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .codesym.yaml in the working or home directory)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newSymbolsCmd(a),
		newQueryCmd(a),
		newScanCmd(a),
		newOutlineCmd(a),
		newLanguagesCmd(),
		newMCPCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadConfig binds the running command's flags to their config keys and
// loads the merged configuration. Several commands share a key, so flags are
// bound per run.
func (a *app) loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return nil, fmt.Errorf("unknown flag %q for key %q", flag, key)
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		slog.Debug("config.loaded", "file", used)
	}
	return cfg, nil
}

// setupLogging installs a text slog handler on w at warn level, or debug
// when verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
