// Package scan extracts symbols from every matching file under a directory.
// Per-file failures become report data; they never abort a scan.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/symbols"
)

// FileReport is the extraction result for one scanned file. When Error is
// set, Symbols is empty.
type FileReport struct {
	Path     string           `json:"path" yaml:"path"`
	Language lang.Language    `json:"language" yaml:"language"`
	Symbols  []symbols.Symbol `json:"symbols" yaml:"symbols"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// ReportCache stores reports keyed by path, content hash and options.
// Implementations must be safe for concurrent use when Workers > 1.
type ReportCache interface {
	Hash(path string) (string, error)
	Lookup(rel, hash, optionsKey string) (FileReport, bool, error)
	Save(rel, hash, optionsKey string, report FileReport) error
}

// Options configures a Scanner.
type Options struct {
	// Include and Exclude are globs over root-relative slash paths. A file is
	// scanned when it matches an include glob and no exclude glob. Empty
	// Include means DefaultInclude.
	Include []string
	Exclude []string

	MaxChunkSize int
	OmitContent  bool

	// Workers > 1 extracts files concurrently. Report order is unaffected.
	Workers int

	// RespectGitignore skips paths ignored by the root .gitignore.
	RespectGitignore bool

	// KeepEmpty reports files that yield no symbols instead of dropping them.
	KeepEmpty bool

	Cache ReportCache

	// OnFile is called once per candidate file, concurrently when Workers > 1.
	OnFile func(rel string)
}

// OptionsKey identifies the extraction options a cached report was built with.
func (o Options) OptionsKey() string {
	return fmt.Sprintf("max_chunk_size=%d;content=%t", o.MaxChunkSize, !o.OmitContent)
}

// Scanner walks directories and extracts symbols per file.
type Scanner struct {
	extractor *symbols.Extractor
	opts      Options
	include   []compiledPattern
	exclude   []compiledPattern
}

// New creates a Scanner. It fails when a glob does not compile.
func New(extractor *symbols.Extractor, opts Options) (*Scanner, error) {
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	inc, err := compilePatterns(include)
	if err != nil {
		return nil, err
	}
	exc, err := compilePatterns(opts.Exclude)
	if err != nil {
		return nil, err
	}
	return &Scanner{extractor: extractor, opts: opts, include: inc, exclude: exc}, nil
}

// Scan walks root and returns one report per file that produced symbols or
// failed, in lexical path order.
func (s *Scanner) Scan(ctx context.Context, root string) ([]FileReport, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var gi *ignore.GitIgnore
	if s.opts.RespectGitignore {
		gi = loadGitignore(root)
	}
	files, err := s.collect(ctx, root, gi)
	if err != nil {
		return nil, err
	}
	slog.Info("scan.start", "root", root, "files", len(files), "workers", max(s.opts.Workers, 1))

	var hits atomic.Int64
	results := make([]FileReport, len(files))
	if s.opts.Workers <= 1 {
		for i, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = s.scanFile(f, &hits)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.Workers)
		for i, f := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = s.scanFile(f, &hits)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	reports := make([]FileReport, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		} else if len(r.Symbols) == 0 && !s.opts.KeepEmpty {
			continue
		}
		reports = append(reports, r)
	}
	slog.Info("scan.done", "reports", len(reports), "errors", failed, "cached", hits.Load())
	return reports, nil
}

// Files returns the root-relative paths Scan would consider under root, in
// lexical order, without parsing them.
func (s *Scanner) Files(ctx context.Context, root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var gi *ignore.GitIgnore
	if s.opts.RespectGitignore {
		gi = loadGitignore(root)
	}
	files, err := s.collect(ctx, root, gi)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.rel
	}
	return out, nil
}

// scanFile extracts one file, consulting the cache when configured.
func (s *Scanner) scanFile(f candidate, hits *atomic.Int64) FileReport {
	if s.opts.OnFile != nil {
		s.opts.OnFile(f.rel)
	}

	var hash string
	key := s.opts.OptionsKey()
	if s.opts.Cache != nil {
		// Unreadable files are left to the extractor to report.
		if h, err := s.opts.Cache.Hash(f.path); err == nil {
			hash = h
			if r, ok, err := s.opts.Cache.Lookup(f.rel, hash, key); err != nil {
				slog.Warn("scan.cache.lookup.err", "path", f.rel, "err", err)
			} else if ok {
				hits.Add(1)
				return r
			}
		}
	}

	report := s.extract(f)

	if s.opts.Cache != nil && hash != "" {
		if err := s.opts.Cache.Save(f.rel, hash, key, report); err != nil {
			slog.Warn("scan.cache.save.err", "path", f.rel, "err", err)
		}
	}
	return report
}

func (s *Scanner) extract(f candidate) FileReport {
	syms, err := s.extractor.ExtractFile(f.path, symbols.Options{
		MaxChunkSize: s.opts.MaxChunkSize,
		OmitContent:  s.opts.OmitContent,
	})
	if err != nil {
		slog.Warn("scan.file.err", "path", f.rel, "err", err)
		return FileReport{Path: f.rel, Language: lang.Unknown, Symbols: []symbols.Symbol{}, Error: err.Error()}
	}
	l, _ := lang.Detect(f.path, "")
	if syms == nil {
		syms = []symbols.Symbol{}
	}
	return FileReport{Path: f.rel, Language: l, Symbols: syms}
}
