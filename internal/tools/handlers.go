package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/codesym/internal/scan"
	"github.com/DeusData/codesym/internal/store"
	"github.com/DeusData/codesym/internal/symbols"
)

func (s *Server) handleListSymbols(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}

	opts := symbols.Options{
		Language:     getStringArg(args, "language"),
		MaxChunkSize: getIntArg(args, "max_chunk_size", s.cfg.MaxChunkSize),
		OmitContent:  !getBoolArg(args, "include_content", s.cfg.Content),
	}
	key := s.symbolKey(path, opts)
	if key != "" {
		if syms, ok := s.symbolCache.Get(key); ok {
			slog.Debug("tool.list_symbols.cached", "path", path)
			return jsonResult(syms), nil
		}
	}

	syms, err := s.extractor.ExtractFile(path, opts)
	if err != nil {
		return errResult(err.Error()), nil
	}
	if key != "" {
		s.symbolCache.Add(key, syms)
	}
	slog.Info("tool.list_symbols", "path", path, "symbols", len(syms))
	return jsonResult(syms), nil
}

// symbolKey identifies a list_symbols result by file content and options.
// It returns "" when the result should not be cached.
func (s *Server) symbolKey(path string, opts symbols.Options) string {
	if s.symbolCache == nil {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	hash, err := store.HashFile(abs)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s\x00%s\x00%s\x00%d\x00%t", abs, hash, opts.Language, opts.MaxChunkSize, opts.OmitContent)
}

func (s *Server) handleRunQuery(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	path := getStringArg(args, "path")
	pattern := getStringArg(args, "query")
	if path == "" || pattern == "" {
		return errResult("path and query are required"), nil
	}

	matches, err := s.executor.RunFile(path, pattern, getStringArg(args, "language"))
	if err != nil {
		return errResult(err.Error()), nil
	}
	slog.Info("tool.run_query", "path", path, "matches", len(matches))
	return jsonResult(matches), nil
}

func (s *Server) handleScanDirectory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	reports, toolErr := s.scan(ctx, args, scan.Options{
		MaxChunkSize: getIntArg(args, "max_chunk_size", s.cfg.MaxChunkSize),
		OmitContent:  !getBoolArg(args, "include_content", s.cfg.Content),
	})
	if toolErr != nil {
		return toolErr, nil
	}
	return jsonResult(reports), nil
}

func (s *Server) handleOutline(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	reports, toolErr := s.scan(ctx, args, scan.Options{OmitContent: true})
	if toolErr != nil {
		return toolErr, nil
	}
	return textResult(scan.RenderOutline(reports)), nil
}

// scan runs a directory scan for the root/include/exclude arguments on top
// of opts, filling the remaining options from the server config.
func (s *Server) scan(ctx context.Context, args map[string]any, opts scan.Options) ([]scan.FileReport, *mcp.CallToolResult) {
	root := getStringArg(args, "root")
	if root == "" {
		return nil, errResult("root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errResult(err.Error())
	}

	opts.Include = getStringSliceArg(args, "include", s.cfg.Include)
	opts.Exclude = getStringSliceArg(args, "exclude", s.cfg.Exclude)
	opts.Workers = s.cfg.Workers
	opts.RespectGitignore = s.cfg.Gitignore
	if s.store != nil {
		opts.Cache = store.NewReportCache(s.store, abs)
	}

	scanner, err := scan.New(s.extractor, opts)
	if err != nil {
		return nil, errResult(err.Error())
	}
	reports, err := scanner.Scan(ctx, abs)
	if err != nil {
		return nil, errResult(err.Error())
	}
	return reports, nil
}
