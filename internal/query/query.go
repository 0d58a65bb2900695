// Package query runs raw tree-sitter query patterns against a parsed file.
// Patterns are passed through to the query engine unchanged.
package query

import (
	"fmt"
	"log/slog"
	"os"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

// Capture is one named node captured by a match.
type Capture struct {
	Name      string `json:"name" yaml:"name"`
	Text      string `json:"text" yaml:"text"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
}

// Match is one pattern match with its captures in capture order.
type Match struct {
	PatternIndex int       `json:"pattern_index" yaml:"pattern_index"`
	Captures     []Capture `json:"captures" yaml:"captures"`
}

// PatternError reports a pattern that does not compile for a language.
type PatternError struct {
	Language lang.Language
	Row      int
	Column   int
	Message  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s query at %d:%d: %s", e.Language, e.Row+1, e.Column+1, e.Message)
}

// Executor compiles and runs queries using grammars from a shared cache.
type Executor struct {
	cache *parser.Cache
}

// NewExecutor creates an Executor backed by cache.
func NewExecutor(cache *parser.Cache) *Executor {
	return &Executor{cache: cache}
}

// RunFile runs pattern over the file at path. language overrides detection
// when non-empty.
func (e *Executor) RunFile(path, pattern, language string) ([]Match, error) {
	l, err := lang.Detect(path, language)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	matches, err := e.RunSource(source, l, pattern)
	if err != nil {
		return nil, err
	}
	slog.Debug("query.run", "path", path, "lang", l, "matches", len(matches))
	return matches, nil
}

// RunSource runs pattern over in-memory source.
func (e *Executor) RunSource(source []byte, language lang.Language, pattern string) ([]Match, error) {
	h, err := e.cache.Resolve(language)
	if err != nil {
		return nil, err
	}

	q, qErr := tree_sitter.NewQuery(h.Grammar, pattern)
	if qErr != nil {
		return nil, &PatternError{
			Language: language,
			Row:      int(qErr.Row),
			Column:   int(qErr.Column),
			Message:  qErr.Message,
		}
	}
	defer q.Close()

	tree, err := h.Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	captureNames := q.CaptureNames()
	out := []Match{}
	matches := cursor.Matches(q, tree.RootNode(), source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		match := Match{PatternIndex: int(m.PatternIndex), Captures: make([]Capture, 0, len(m.Captures))}
		for _, c := range m.Captures {
			node := c.Node
			match.Captures = append(match.Captures, Capture{
				Name:      captureNames[c.Index],
				Text:      parser.NodeText(&node, source),
				StartLine: parser.StartLine(&node),
				EndLine:   parser.EndLine(&node),
			})
		}
		out = append(out, match)
	}
	return out, nil
}
