package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/codesym/internal/config"
	"github.com/DeusData/codesym/internal/parser"
	"github.com/DeusData/codesym/internal/query"
	"github.com/DeusData/codesym/internal/scan"
	"github.com/DeusData/codesym/internal/store"
	"github.com/DeusData/codesym/internal/symbols"
)

func newTestServer(t *testing.T, st *store.Store) *Server {
	t.Helper()
	return NewServer(parser.NewCache(), config.Default(), st, "test")
}

func callReq(t *testing.T, name string, args map[string]any) *mcp.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatal(err)
	}
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: json.RawMessage(raw)},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const samplePy = `def alpha():
    """First."""
    return 1


class Beta:
    def gamma(self):
        pass
`

func TestListSymbols(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mod.py", samplePy)
	srv := newTestServer(t, nil)

	res, err := srv.handleListSymbols(context.Background(), callReq(t, "list_symbols", map[string]any{"path": path}))
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var syms []symbols.Symbol
	if err := json.Unmarshal([]byte(resultText(t, res)), &syms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
		if s.Content != nil {
			t.Errorf("%s: content should be omitted by default", s.Name)
		}
	}
	if got := strings.Join(names, ","); got != "alpha,Beta,gamma" {
		t.Errorf("names = %s, want alpha,Beta,gamma", got)
	}
	if syms[0].Docstring == nil || *syms[0].Docstring != "First." {
		t.Errorf("alpha docstring = %v", syms[0].Docstring)
	}
}

func TestListSymbols_ContentAndChunking(t *testing.T) {
	body := "def big():\n" + strings.Repeat("    x = 1\n", 40)
	path := writeFile(t, t.TempDir(), "big.py", body)
	srv := newTestServer(t, nil)

	res, _ := srv.handleListSymbols(context.Background(), callReq(t, "list_symbols", map[string]any{
		"path":            path,
		"max_chunk_size":  100,
		"include_content": true,
	}))
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var syms []symbols.Symbol
	if err := json.Unmarshal([]byte(resultText(t, res)), &syms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(syms) < 2 {
		t.Fatalf("expected chunks, got %d symbols", len(syms))
	}
	var joined strings.Builder
	for _, s := range syms {
		if s.Content == nil {
			t.Fatal("chunk without content")
		}
		joined.WriteString(*s.Content)
	}
	if joined.String() != strings.TrimRight(body, "\n") {
		t.Error("chunks do not reassemble the function body")
	}
}

func TestListSymbols_CacheFollowsContent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mod.py", samplePy)
	srv := newTestServer(t, nil)
	args := map[string]any{"path": path}

	first, _ := srv.handleListSymbols(context.Background(), callReq(t, "list_symbols", args))
	second, _ := srv.handleListSymbols(context.Background(), callReq(t, "list_symbols", args))
	if resultText(t, first) != resultText(t, second) {
		t.Error("repeated call returned a different result")
	}
	if n := srv.symbolCache.Len(); n != 1 {
		t.Errorf("symbol cache holds %d entries, want 1", n)
	}

	if err := os.WriteFile(path, []byte("def only():\n    pass\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, _ := srv.handleListSymbols(context.Background(), callReq(t, "list_symbols", args))
	var syms []symbols.Symbol
	if err := json.Unmarshal([]byte(resultText(t, third)), &syms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(syms) != 1 || syms[0].Name != "only" {
		t.Errorf("edited file served from cache: %+v", syms)
	}
}

func TestListSymbols_Errors(t *testing.T) {
	dir := t.TempDir()
	binary := writeFile(t, dir, "blob.py", "def x():\x00\n")
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing path", map[string]any{}, "path is required"},
		{"binary", map[string]any{"path": binary}, "binary"},
		{"unsupported", map[string]any{"path": writeFile(t, dir, "notes.xyz", "hi")}, "cannot detect"},
		{"missing file", map[string]any{"path": filepath.Join(dir, "gone.py")}, "no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := srv.handleListSymbols(context.Background(), callReq(t, "list_symbols", tt.args))
			if err != nil {
				t.Fatalf("protocol error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected tool error, got %s", resultText(t, res))
			}
			if !strings.Contains(resultText(t, res), tt.want) {
				t.Errorf("error %q does not mention %q", resultText(t, res), tt.want)
			}
		})
	}
}

func TestRunQuery(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mod.py", samplePy)
	srv := newTestServer(t, nil)

	res, _ := srv.handleRunQuery(context.Background(), callReq(t, "run_query", map[string]any{
		"path":  path,
		"query": "(function_definition name: (identifier) @name)",
	}))
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var matches []query.Match
	if err := json.Unmarshal([]byte(resultText(t, res)), &matches); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if c := matches[1].Captures[0]; c.Name != "name" || c.Text != "gamma" || c.StartLine != 7 {
		t.Errorf("unexpected capture: %+v", c)
	}
}

func TestRunQuery_InvalidPattern(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mod.py", samplePy)
	srv := newTestServer(t, nil)

	res, err := srv.handleRunQuery(context.Background(), callReq(t, "run_query", map[string]any{
		"path":  path,
		"query": "(function_definition",
	}))
	if err != nil {
		t.Fatalf("protocol error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "invalid python query") {
		t.Errorf("expected pattern error, got %s", resultText(t, res))
	}

	res, _ = srv.handleRunQuery(context.Background(), callReq(t, "run_query", map[string]any{"path": path}))
	if !res.IsError {
		t.Error("expected error when query is missing")
	}
}

func seedTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def a():\n    pass\n")
	writeFile(t, dir, "pkg/b.go", "package pkg\n\nfunc B() {}\n")
	writeFile(t, dir, "vendor/c.py", "def c():\n    pass\n")
	writeFile(t, dir, "data.bin.py", "\x00\x01")
	return dir
}

func TestScanDirectory(t *testing.T) {
	dir := seedTree(t)
	srv := newTestServer(t, nil)

	res, err := srv.handleScanDirectory(context.Background(), callReq(t, "scan_directory", map[string]any{
		"root":    dir,
		"exclude": []string{"vendor/**"},
	}))
	if err != nil {
		t.Fatalf("protocol error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var reports []scan.FileReport
	if err := json.Unmarshal([]byte(resultText(t, res)), &reports); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := map[string]scan.FileReport{}
	for _, r := range reports {
		got[r.Path] = r
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 reports, got %v", reports)
	}
	if _, ok := got["vendor/c.py"]; ok {
		t.Error("excluded file was scanned")
	}
	if r := got["pkg/b.go"]; len(r.Symbols) != 1 || r.Symbols[0].Name != "B" {
		t.Errorf("pkg/b.go report: %+v", r)
	}
	if r := got["data.bin.py"]; r.Error == "" || r.Language != "unknown" {
		t.Errorf("binary file should produce an error report: %+v", r)
	}
}

func TestScanDirectory_UsesStore(t *testing.T) {
	dir := seedTree(t)
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer st.Close()
	srv := newTestServer(t, st)

	res, _ := srv.handleScanDirectory(context.Background(), callReq(t, "scan_directory", map[string]any{"root": dir}))
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	abs, _ := filepath.Abs(dir)
	stored, err := st.Reports(abs)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(stored) != 4 {
		t.Errorf("expected 4 cached reports, got %d", len(stored))
	}
}

func TestScanDirectory_BadRoot(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, args := range []map[string]any{
		{},
		{"root": filepath.Join(t.TempDir(), "missing")},
		{"root": t.TempDir(), "include": []string{"[a"}},
	} {
		res, err := srv.handleScanDirectory(context.Background(), callReq(t, "scan_directory", args))
		if err != nil {
			t.Fatalf("protocol error: %v", err)
		}
		if !res.IsError {
			t.Errorf("args %v: expected tool error", args)
		}
	}
}

func TestOutline(t *testing.T) {
	dir := seedTree(t)
	srv := newTestServer(t, nil)

	res, _ := srv.handleOutline(context.Background(), callReq(t, "outline", map[string]any{
		"root":    dir,
		"include": []string{"**/*.go", "a.py"},
	}))
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	want := "## a.py (python)\n- function: a (lines 1-2)\n\n## pkg/b.go (go)\n- function: B (lines 3-3)\n"
	if got := resultText(t, res); got != want {
		t.Errorf("outline:\n%s\nwant:\n%s", got, want)
	}
}

func TestGetStringSliceArg(t *testing.T) {
	args := map[string]any{"list": []any{"a", 1.0, "b"}, "wrong": "x"}
	if got := getStringSliceArg(args, "list", nil); strings.Join(got, ",") != "a,b" {
		t.Errorf("list = %v", got)
	}
	if got := getStringSliceArg(args, "wrong", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Errorf("wrong type should fall back to default, got %v", got)
	}
	if got := getStringSliceArg(args, "absent", nil); got != nil {
		t.Errorf("absent = %v", got)
	}
}

func TestToolsRegistered(t *testing.T) {
	srv := newTestServer(t, nil)
	if srv.MCPServer() == nil {
		t.Fatal("MCPServer() returned nil")
	}

	ctx := context.Background()
	clientT, serverT := mcp.NewInMemoryTransports()
	ss, err := srv.MCPServer().Connect(ctx, serverT, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer cs.Close()

	list, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{"list_symbols", "run_query", "scan_directory", "outline"} {
		if !strings.Contains(strings.Join(names, ","), want) {
			t.Errorf("tool %s not registered (have %v)", want, names)
		}
	}
}
