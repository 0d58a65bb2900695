package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/scan"
	"github.com/DeusData/codesym/internal/store"
	"github.com/DeusData/codesym/internal/symbols"
	"github.com/DeusData/codesym/internal/watch"
)

// scanBindings maps config keys to the flags shared by scan and outline.
var scanBindings = map[string]string{
	config.KeyInclude:   "include",
	config.KeyExclude:   "exclude",
	config.KeyWorkers:   "workers",
	config.KeyGitignore: "gitignore",
	config.KeyCacheDB:   "cache-db",
}

func newScanCmd(a *app) *cobra.Command {
	var (
		output   string
		outline  bool
		progress bool
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Extract symbols from every matching file under a directory",
		Long: `Walk a directory tree (default: the working directory) and extract symbols
from every file whose root-relative path matches an --include glob and no
--exclude glob. Files without symbols are left out. Files that cannot be
parsed (binary content, unknown language) are reported with an error and
do not stop the scan.

With --cache-db, results are stored in SQLite keyed by content hash and
reused until the file or the chunking options change. With --watch, the
tree is polled for changes and the result is written again after each
change.

Examples:
  # Scan the working directory
  codesym scan

  # Only Go and Python, skipping vendored code, four workers
  codesym scan ./repo --include '**/*.go' --include '**/*.py' --exclude 'vendor/**' --workers 4

  # Markdown outline with a progress bar
  codesym scan --outline --progress

  # Rewrite symbols.json whenever a file changes
  codesym scan --watch --cache-db .codesym.db -o symbols.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings := map[string]string{
				config.KeyMaxChunkSize: "max-chunk-size",
				config.KeyContent:      "content",
				config.KeyFormat:       "format",
			}
			for k, f := range scanBindings {
				bindings[k] = f
			}
			cfg, err := a.loadConfig(cmd, bindings)
			if err != nil {
				return err
			}

			opts := scan.Options{
				MaxChunkSize: cfg.MaxChunkSize,
				OmitContent:  !cfg.Content || outline,
			}
			if progress {
				if bar := newScanProgressBar(cmd); bar != nil {
					opts.OnFile = func(string) { bar.Add(1) }
					defer bar.Finish()
				}
			}

			sess, err := a.openScan(cfg, rootArg(args), opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			return sess.runAndWatch(cmd.Context(), watching, func(reports []scan.FileReport) error {
				if outline {
					return writeText(cmd, output, scan.RenderOutline(reports))
				}
				return writeResult(cmd, output, cfg.Format, reports)
			})
		},
	}

	addScanFlags(cmd)
	cmd.Flags().Int("max-chunk-size", 0, "split symbols larger than this many characters (0 disables chunking)")
	cmd.Flags().Bool("content", false, "include each symbol's source text")
	cmd.Flags().String("format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&outline, "outline", false, "render a markdown outline instead of JSON/YAML")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "keep running and rescan when files change")
	return cmd
}

// addScanFlags registers the directory selection flags shared by scan and outline.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("include", []string{"**/*"}, "glob over root-relative paths to include (repeatable)")
	cmd.Flags().StringSlice("exclude", nil, "glob over root-relative paths to exclude (repeatable)")
	cmd.Flags().Int("workers", 1, "number of files parsed concurrently")
	cmd.Flags().Bool("gitignore", false, "skip paths ignored by the root .gitignore")
	cmd.Flags().String("cache-db", "", "SQLite file caching per-file results")
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// scanSession is a scanner configured for one root, with its optional cache.
type scanSession struct {
	root    string
	scanner *scan.Scanner
	store   *store.Store
}

// openScan fills the directory selection options from cfg and attaches the
// report cache when configured.
func (a *app) openScan(cfg *config.Config, root string, opts scan.Options) (*scanSession, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	opts.Include = cfg.Include
	opts.Exclude = cfg.Exclude
	opts.Workers = cfg.Workers
	opts.RespectGitignore = cfg.Gitignore

	sess := &scanSession{root: abs}
	if cfg.CacheDB != "" {
		st, err := store.Open(cfg.CacheDB)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		sess.store = st
		opts.Cache = store.NewReportCache(st, abs)
		slog.Debug("scan.cache", "db", st.Path())
	}

	sess.scanner, err = scan.New(symbols.NewExtractor(a.cache), opts)
	if err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

func (s *scanSession) Scan(ctx context.Context) ([]scan.FileReport, error) {
	return s.scanner.Scan(ctx, s.root)
}

func (s *scanSession) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// runAndWatch calls emit once and, when watching, again after every change
// under the session root until ctx is cancelled.
func (s *scanSession) runAndWatch(ctx context.Context, watching bool, emit func([]scan.FileReport) error) error {
	run := func(ctx context.Context) error {
		reports, err := s.Scan(ctx)
		if err != nil {
			return err
		}
		return emit(reports)
	}
	if err := run(ctx); err != nil {
		return err
	}
	if !watching {
		return nil
	}

	slog.Info("watch.start", "root", s.root)
	err := watch.New(s.root, s.scanner, run).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newScanProgressBar returns a spinner-style bar on the command's stderr, or
// nil when stderr is a file or pipe rather than a terminal.
func newScanProgressBar(cmd *cobra.Command) *progressbar.ProgressBar {
	w := cmd.ErrOrStderr()
	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		slog.Debug("scan.progress.disabled", "reason", "stderr is not a terminal")
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
