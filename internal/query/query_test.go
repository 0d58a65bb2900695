package query

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

func TestRunSource_FunctionNames(t *testing.T) {
	t.Parallel()

	src := []byte("def foo():\n    pass\n\ndef bar():\n    return 1\n")
	ex := NewExecutor(parser.NewCache())

	matches, err := ex.RunSource(src, lang.Python, "(function_definition name: (identifier) @name)")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 0, matches[0].PatternIndex)
	require.Len(t, matches[0].Captures, 1)
	assert.Equal(t, Capture{Name: "name", Text: "foo", StartLine: 1, EndLine: 1}, matches[0].Captures[0])
	assert.Equal(t, Capture{Name: "name", Text: "bar", StartLine: 4, EndLine: 4}, matches[1].Captures[0])
}

func TestRunSource_MultiplePatternsAndCaptures(t *testing.T) {
	t.Parallel()

	src := []byte("class A:\n    def m(self):\n        pass\n")
	pattern := `
(class_definition name: (identifier) @class.name) @class
(function_definition name: (identifier) @func.name)
`
	matches, err := NewExecutor(parser.NewCache()).RunSource(src, lang.Python, pattern)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 0, matches[0].PatternIndex)
	names := map[string]Capture{}
	for _, c := range matches[0].Captures {
		names[c.Name] = c
	}
	assert.Equal(t, "A", names["class.name"].Text)
	assert.Equal(t, 1, names["class"].StartLine)
	assert.Equal(t, 3, names["class"].EndLine)

	assert.Equal(t, 1, matches[1].PatternIndex)
	require.Len(t, matches[1].Captures, 1)
	assert.Equal(t, "m", matches[1].Captures[0].Text)
	assert.Equal(t, 2, matches[1].Captures[0].StartLine)
}

func TestRunSource_NoMatches(t *testing.T) {
	t.Parallel()

	matches, err := NewExecutor(parser.NewCache()).RunSource(
		[]byte("x = 1\n"), lang.Python, "(class_definition) @c")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRunSource_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewExecutor(parser.NewCache()).RunSource(
		[]byte("x = 1\n"), lang.Python, "(not_a_real_node_kind) @x")
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, lang.Python, perr.Language)
	assert.Contains(t, err.Error(), "invalid python query")
}

func TestRunFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	ex := NewExecutor(parser.NewCache())
	matches, err := ex.RunFile(path, "(function_declaration name: (identifier) @fn)", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "main", matches[0].Captures[0].Text)
	assert.Equal(t, 3, matches[0].Captures[0].StartLine)

	_, err = ex.RunFile(filepath.Join(dir, "README"), "(x)", "")
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)

	_, err = ex.RunFile(filepath.Join(dir, "gone.go"), "(x)", "")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = ex.RunFile(path, "(x)", "nim")
	assert.ErrorIs(t, err, parser.ErrGrammarUnavailable)
}
