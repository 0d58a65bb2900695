package tools

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/parser"
	"github.com/DeusData/codesym/internal/query"
	"github.com/DeusData/codesym/internal/store"
	"github.com/DeusData/codesym/internal/symbols"
)

// symbolCacheSize bounds the number of list_symbols results kept in memory.
const symbolCacheSize = 256

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp       *mcp.Server
	cfg       *config.Config
	extractor *symbols.Extractor
	executor  *query.Executor
	store     *store.Store // optional report cache

	// list_symbols results keyed by path, content hash and options
	symbolCache *lru.Cache[string, []symbols.Symbol]
}

// NewServer creates a new MCP server with all tools registered. cfg supplies
// defaults for arguments a caller leaves out; st may be nil.
func NewServer(cache *parser.Cache, cfg *config.Config, st *store.Store, version string) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	srv := &Server{
		cfg:       cfg,
		extractor: symbols.NewExtractor(cache),
		executor:  query.NewExecutor(cache),
		store:     st,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "codesym",
				Version: version,
			},
			nil,
		),
	}
	if c, err := lru.New[string, []symbols.Symbol](symbolCacheSize); err == nil {
		srv.symbolCache = c
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves MCP over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	// 1. list_symbols
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_symbols",
		Description: "List the functions and classes defined in a source file, in source order, with 1-based line ranges, signatures and (for Python) docstrings. Nested definitions are returned flat. Symbols larger than max_chunk_size are split into line-aligned chunks that concatenate back to the original text.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Path to the source file"
				},
				"language": {
					"type": "string",
					"description": "Language override (e.g. 'python', 'go'). Detected from the extension when omitted."
				},
				"max_chunk_size": {
					"type": "integer",
					"description": "Split symbols whose source exceeds this many characters (0 disables chunking)"
				},
				"include_content": {
					"type": "boolean",
					"description": "Include each symbol's source text (default false)"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleListSymbols)

	// 2. run_query
	s.mcp.AddTool(&mcp.Tool{
		Name:        "run_query",
		Description: "Run a raw tree-sitter query against a file's syntax tree. Returns every match with its pattern index and named captures (text and 1-based lines).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Path to the source file"
				},
				"query": {
					"type": "string",
					"description": "Tree-sitter query, e.g. '(function_definition name: (identifier) @name)'"
				},
				"language": {
					"type": "string",
					"description": "Language override. Detected from the extension when omitted."
				}
			},
			"required": ["path", "query"]
		}`),
	}, s.handleRunQuery)

	// 3. scan_directory
	s.mcp.AddTool(&mcp.Tool{
		Name:        "scan_directory",
		Description: "Extract symbols from every matching file under a directory. Returns one report per file that yielded symbols; files that fail (binary, unsupported language) are reported with an error instead of aborting the scan.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root": {
					"type": "string",
					"description": "Directory to scan"
				},
				"include": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Globs over root-relative paths to include (default ['**/*'])"
				},
				"exclude": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Globs over root-relative paths to exclude"
				},
				"max_chunk_size": {
					"type": "integer",
					"description": "Split symbols whose source exceeds this many characters (0 disables chunking)"
				},
				"include_content": {
					"type": "boolean",
					"description": "Include each symbol's source text (default false)"
				}
			},
			"required": ["root"]
		}`),
	}, s.handleScanDirectory)

	// 4. outline
	s.mcp.AddTool(&mcp.Tool{
		Name:        "outline",
		Description: "Render a markdown outline of a directory: one heading per file and one line per function/class with its line range.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"root": {
					"type": "string",
					"description": "Directory to outline"
				},
				"include": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Globs over root-relative paths to include (default ['**/*'])"
				},
				"exclude": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Globs over root-relative paths to exclude"
				}
			},
			"required": ["root"]
		}`),
	}, s.handleOutline)
}

// jsonResult marshals data as indented JSON into a tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return textResult(string(b))
}

// textResult returns plain text as a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getIntArg extracts an integer argument with a default value.
func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return defaultVal
	}
	return int(f)
}

// getBoolArg extracts a boolean argument with a default value.
func getBoolArg(args map[string]any, key string, defaultVal bool) bool {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// getStringSliceArg extracts an array of strings, or defaultVal when absent.
// Non-string elements are skipped.
func getStringSliceArg(args map[string]any, key string, defaultVal []string) []string {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	items, ok := v.([]any)
	if !ok {
		return defaultVal
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
