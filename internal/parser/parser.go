package parser

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/codesym/internal/lang"
)

// ErrGrammarUnavailable matches every GrammarUnavailableError via errors.Is.
var ErrGrammarUnavailable = errors.New("grammar unavailable")

// GrammarUnavailableError reports a language with no usable grammar. Err
// carries the underlying cause for diagnostics.
type GrammarUnavailableError struct {
	Language lang.Language
	Err      error
}

func (e *GrammarUnavailableError) Error() string {
	return fmt.Sprintf("tree-sitter grammar for '%s' is unavailable: %v", e.Language, e.Err)
}

func (e *GrammarUnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrGrammarUnavailable) hold.
func (e *GrammarUnavailableError) Is(target error) bool { return target == ErrGrammarUnavailable }

// Handle is a resolved grammar plus a pool of parsers bound to it.
// Parsers are pooled via sync.Pool to avoid per-file allocation.
type Handle struct {
	Language lang.Language
	Grammar  *tree_sitter.Language
	pool     *sync.Pool
}

// Parse parses source code into a tree-sitter Tree.
// The caller must call tree.Close() when done.
func (h *Handle) Parse(source []byte) (*tree_sitter.Tree, error) {
	p, _ := h.pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("failed to get parser for language %s", h.Language)
	}
	tree := p.Parse(source, nil)
	h.pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("parse failed for language %s", h.Language)
	}
	return tree, nil
}

// Cache lazily resolves and memoizes grammars per language. It is safe for
// concurrent use and never evicts: one entry per language ever requested.
type Cache struct {
	mu      sync.Mutex
	handles map[lang.Language]*Handle
}

// NewCache creates an empty grammar cache.
func NewCache() *Cache {
	return &Cache{handles: make(map[lang.Language]*Handle)}
}

// Resolve returns the handle for l, loading the grammar on first use.
func (c *Cache) Resolve(l lang.Language) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.handles[l]; ok {
		return h, nil
	}

	load, ok := grammars[l]
	if !ok {
		return nil, &GrammarUnavailableError{Language: l, Err: fmt.Errorf("no grammar compiled in for %q", l)}
	}
	tsLang := tree_sitter.NewLanguage(load())

	// Fail here rather than inside pool.New, where the error would be lost.
	probe := tree_sitter.NewParser()
	if err := probe.SetLanguage(tsLang); err != nil {
		probe.Close()
		return nil, &GrammarUnavailableError{Language: l, Err: err}
	}

	pool := &sync.Pool{
		New: func() any {
			p := tree_sitter.NewParser()
			if err := p.SetLanguage(tsLang); err != nil {
				panic(fmt.Sprintf("set language: %v", err))
			}
			return p
		},
	}
	pool.Put(probe)

	h := &Handle{Language: l, Grammar: tsLang, pool: pool}
	c.handles[l] = h
	return h, nil
}

// Parse resolves l and parses source with it.
func (c *Cache) Parse(l lang.Language, source []byte) (*tree_sitter.Tree, error) {
	h, err := c.Resolve(l)
	if err != nil {
		return nil, err
	}
	return h.Parse(source)
}

// Languages returns the languages resolved so far, sorted.
func (c *Cache) Languages() []lang.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]lang.Language, 0, len(c.handles))
	for l := range c.handles {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WalkFunc is called for each node during AST traversal.
// Return false to skip children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the AST in depth-first order.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the text content of a node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// StartLine returns the 1-based first line of a node.
func StartLine(node *tree_sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// EndLine returns the 1-based last line of a node.
func EndLine(node *tree_sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}
