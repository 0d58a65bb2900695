package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultInclude matches every file.
var DefaultInclude = []string{"**/*"}

// compiledPattern holds a glob and, for "**/" patterns, the glob without that
// prefix so top-level files match too. Globs have no separator, so '*' also
// matches across '/'.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	atRoot  glob.Glob
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			if cp.atRoot, err = glob.Compile(rest); err != nil {
				return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func matchAny(patterns []compiledPattern, rel string) bool {
	for _, p := range patterns {
		if p.glob.Match(rel) || (p.atRoot != nil && p.atRoot.Match(rel)) {
			return true
		}
	}
	return false
}

// candidate is a file selected for extraction.
type candidate struct {
	path string // absolute
	rel  string // slash-separated, relative to the scan root
}

// loadGitignore compiles root/.gitignore, or returns nil when there is none.
func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		slog.Warn("scan.gitignore.err", "path", path, "err", err)
		return nil
	}
	return gi
}

// collect walks root in lexical order and returns the files passing the
// include/exclude globs and, if given, the gitignore matcher.
func (s *Scanner) collect(ctx context.Context, root string, gi *ignore.GitIgnore) ([]candidate, error) {
	var files []candidate
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("scan.walk.err", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if gi != nil && (gi.MatchesPath(rel) || gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegularFile(path, d) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if !matchAny(s.include, rel) || matchAny(s.exclude, rel) {
			return nil
		}
		files = append(files, candidate{path: path, rel: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("scan.symlink.err", "path", path, "err", err)
		}
		return false
	}
	return info.Mode().IsRegular()
}
