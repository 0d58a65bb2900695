package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/store"
	"github.com/DeusData/codesym/internal/tools"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve codesym tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
list_symbols, run_query, scan_directory and outline tools.

Tool arguments left out by the client fall back to the loaded
configuration. With --cache-db, scan_directory reuses cached per-file
results.

Example:
  codesym mcp --cache-db ~/.cache/codesym/reports.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, map[string]string{
				config.KeyCacheDB: "cache-db",
			})
			if err != nil {
				return err
			}

			var st *store.Store
			if cfg.CacheDB != "" {
				st, err = store.Open(cfg.CacheDB)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer st.Close()
			}

			slog.Info("mcp.start", "version", a.version, "cache_db", cfg.CacheDB)
			srv := tools.NewServer(a.cache, cfg, st, a.version)
			if err := srv.Run(cmd.Context()); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("cache-db", "", "SQLite file caching per-file scan results")
	return cmd
}
