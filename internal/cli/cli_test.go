package cli

// Test Plan for the command line:
// - symbols prints JSON by default and YAML with --format yaml
// - symbols honors --content and --max-chunk-size, including via the environment
// - symbols fails on binary input without printing a result
// - query accepts the pattern as an argument or on stdin
// - scan applies include/exclude, renders --outline and writes --output files
// - scan --cache-db creates the SQLite cache
// - outline matches scan --outline
// - languages lists grammars and extensions
// - a --config file supplies defaults that flags override

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeusData/codesym/internal/query"
	"github.com/DeusData/codesym/internal/scan"
	"github.com/DeusData/codesym/internal/symbols"
)

// run executes the command line with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const pySource = `class Greeter:
    def greet(self, name):
        """Say hello."""
        return "hi " + name


def main():
    Greeter().greet("x")
`

func TestSymbols_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.py", pySource)

	out, _, err := run(t, "", "symbols", path)
	require.NoError(t, err)

	var syms []symbols.Symbol
	require.NoError(t, json.Unmarshal([]byte(out), &syms))
	require.Len(t, syms, 3)
	assert.Equal(t, "Greeter", syms[0].Name)
	assert.Equal(t, symbols.Class, syms[0].Kind)
	assert.Equal(t, "greet", syms[1].Name)
	require.NotNil(t, syms[1].Docstring)
	assert.Equal(t, "Say hello.", *syms[1].Docstring)
	assert.Equal(t, 7, syms[2].StartLine)
	assert.Nil(t, syms[2].Content)
}

func TestSymbols_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.py", pySource)

	out, _, err := run(t, "", "symbols", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Greeter")
	assert.Contains(t, out, "kind: function")
	assert.Contains(t, out, "start_line: 2")
}

func TestSymbols_ContentFromEnv(t *testing.T) {
	t.Setenv("CODESYM_CONTENT", "true")
	t.Setenv("CODESYM_MAX_CHUNK_SIZE", "40")
	path := writeFile(t, t.TempDir(), "app.py", pySource)

	out, _, err := run(t, "", "symbols", path)
	require.NoError(t, err)

	var syms []symbols.Symbol
	require.NoError(t, json.Unmarshal([]byte(out), &syms))
	require.Greater(t, len(syms), 3, "class should be chunked")

	var class strings.Builder
	for _, s := range syms {
		require.NotNil(t, s.Content)
		if s.Name == "Greeter" {
			require.True(t, s.IsChunk())
			class.WriteString(*s.Content)
		}
	}
	assert.True(t, strings.HasPrefix(pySource, class.String()))
	assert.True(t, strings.HasSuffix(class.String(), `return "hi " + name`))
}

func TestSymbols_FlagOverridesEnv(t *testing.T) {
	t.Setenv("CODESYM_MAX_CHUNK_SIZE", "40")
	path := writeFile(t, t.TempDir(), "app.py", pySource)

	out, _, err := run(t, "", "symbols", "--max-chunk-size", "0", path)
	require.NoError(t, err)

	var syms []symbols.Symbol
	require.NoError(t, json.Unmarshal([]byte(out), &syms))
	assert.Len(t, syms, 3)
}

func TestSymbols_Errors(t *testing.T) {
	dir := t.TempDir()
	binary := writeFile(t, dir, "blob.py", "\x00\x00")

	out, _, err := run(t, "", "symbols", binary)
	require.Error(t, err)
	assert.ErrorIs(t, err, symbols.ErrBinaryContent)
	assert.Empty(t, out)

	_, _, err = run(t, "", "symbols")
	assert.Error(t, err, "file argument is required")

	_, _, err = run(t, "", "symbols", "--format", "xml", writeFile(t, dir, "ok.py", "def f():\n    pass\n"))
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.py", pySource)
	pattern := "(class_definition name: (identifier) @class)"

	for name, tc := range map[string]struct {
		args  []string
		stdin string
	}{
		"argument": {[]string{"query", path, pattern}, ""},
		"stdin":    {[]string{"query", path, "-"}, pattern},
	} {
		t.Run(name, func(t *testing.T) {
			out, _, err := run(t, tc.stdin, tc.args...)
			require.NoError(t, err)

			var matches []query.Match
			require.NoError(t, json.Unmarshal([]byte(out), &matches))
			require.Len(t, matches, 1)
			require.Len(t, matches[0].Captures, 1)
			assert.Equal(t, "class", matches[0].Captures[0].Name)
			assert.Equal(t, "Greeter", matches[0].Captures[0].Text)
		})
	}
}

func TestQuery_InvalidPattern(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.py", pySource)

	_, _, err := run(t, "", "query", path, "(class_definition")
	var perr *query.PatternError
	assert.ErrorAs(t, err, &perr)
}

func seedRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "app.py", pySource)
	writeFile(t, dir, "lib/util.go", "package lib\n\nfunc Util() int {\n\treturn 1\n}\n")
	writeFile(t, dir, "lib/consts.go", "package lib\n\nconst X = 1\n")
	writeFile(t, dir, "build/gen.py", "def generated():\n    pass\n")
	writeFile(t, dir, "README.md", "# readme\n")
	return dir
}

func TestScan(t *testing.T) {
	dir := seedRepo(t)

	out, _, err := run(t, "", "scan", dir, "--exclude", "build/**", "--exclude", "*.md", "--workers", "3")
	require.NoError(t, err)

	var reports []scan.FileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))

	var paths []string
	for _, r := range reports {
		paths = append(paths, r.Path)
		assert.Empty(t, r.Error)
	}
	assert.Equal(t, []string{"app.py", "lib/util.go"}, paths, "consts.go has no symbols")
}

func TestScan_OutlineToFile(t *testing.T) {
	dir := seedRepo(t)
	outFile := filepath.Join(t.TempDir(), "outline.md")

	out, _, err := run(t, "", "scan", dir, "--include", "lib/**", "--outline", "--output", outFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "## lib/util.go (go)\n- function: Util (lines 3-5)\n", string(got))
}

func TestScan_ProgressAndCache(t *testing.T) {
	dir := seedRepo(t)
	db := filepath.Join(t.TempDir(), "cache", "reports.db")

	first, _, err := run(t, "", "scan", dir, "--progress", "--cache-db", db)
	require.NoError(t, err)
	_, err = os.Stat(db)
	require.NoError(t, err, "cache database should be created")

	second, _, err := run(t, "", "scan", dir, "--cache-db", db)
	require.NoError(t, err)
	assert.JSONEq(t, first, second)
}

func TestOutlineMatchesScanOutline(t *testing.T) {
	dir := seedRepo(t)

	viaScan, _, err := run(t, "", "scan", dir, "--outline")
	require.NoError(t, err)
	viaOutline, _, err := run(t, "", "outline", dir)
	require.NoError(t, err)

	assert.Equal(t, viaScan, viaOutline)
	assert.Contains(t, viaOutline, "## README.md (unknown)\n- error: ")
	assert.Contains(t, viaOutline, "- class: Greeter (lines 1-4)")
}

func TestLanguages(t *testing.T) {
	out, _, err := run(t, "", "languages")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "LANGUAGE"))
	var python string
	for _, l := range lines {
		if strings.HasPrefix(l, "python ") {
			python = l
		}
	}
	require.NotEmpty(t, python)
	assert.Contains(t, python, "yes")
	assert.Contains(t, python, ".py")
}

func TestConfigFile(t *testing.T) {
	dir := seedRepo(t)
	cfgPath := writeFile(t, t.TempDir(), "codesym.yaml", "format: yaml\ninclude:\n  - \"**/*.go\"\n")

	out, _, err := run(t, "", "--config", cfgPath, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "path: lib/util.go")
	assert.NotContains(t, out, "app.py")

	out, _, err = run(t, "", "--config", cfgPath, "scan", dir, "--format", "json", "--include", "*.py")
	require.NoError(t, err)
	var reports []scan.FileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, []string{"app.py", "build/gen.py"}, []string{reports[0].Path, reports[1].Path})
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "codesym test\n", out)
}
