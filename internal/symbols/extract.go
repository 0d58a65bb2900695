package symbols

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

// binarySniffSize is how many leading bytes are checked for a NUL.
const binarySniffSize = 8 << 10

// Options control a single extraction.
type Options struct {
	// Language overrides extension-based detection when non-empty.
	Language string
	// MaxChunkSize splits symbols whose content exceeds it, in bytes. <= 0 disables chunking.
	MaxChunkSize int
	// OmitContent clears Content on every returned symbol.
	OmitContent bool
}

// Extractor turns source files into symbol lists. It is safe for concurrent
// use when its cache is.
type Extractor struct {
	cache *parser.Cache
}

// NewExtractor creates an Extractor that resolves grammars through cache.
func NewExtractor(cache *parser.Cache) *Extractor {
	return &Extractor{cache: cache}
}

// Cache returns the grammar cache the extractor parses with.
func (e *Extractor) Cache() *parser.Cache {
	return e.cache
}

// ListSymbols extracts the symbols of the file at path. language may be empty
// and maxChunkSize <= 0 disables chunking. Content is kept.
func (e *Extractor) ListSymbols(path, language string, maxChunkSize int) ([]Symbol, error) {
	return e.ExtractFile(path, Options{Language: language, MaxChunkSize: maxChunkSize})
}

// ExtractFile extracts the symbols of the file at path.
//
// Fails with a BinaryContentError when the first 8 KiB contain a NUL byte,
// lang.ErrUnsupportedLanguage when no language can be determined,
// parser.ErrGrammarUnavailable, or a wrapped I/O error.
func (e *Extractor) ExtractFile(path string, opts Options) ([]Symbol, error) {
	binary, err := sniffBinary(path)
	if err != nil {
		return nil, err
	}
	if binary {
		return nil, &BinaryContentError{Path: path}
	}

	l, err := lang.Detect(path, opts.Language)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	syms, err := e.ExtractSource(source, l, opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("symbols.extract", "path", path, "lang", l, "symbols", len(syms))
	return syms, nil
}

// ExtractSource extracts symbols from in-memory source. The language is
// taken as given; opts.Language is ignored.
func (e *Extractor) ExtractSource(source []byte, language lang.Language, opts Options) ([]Symbol, error) {
	tree, err := e.cache.Parse(language, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := newWalker(source, language)
	w.visit(tree.RootNode())

	out := make([]Symbol, 0, len(w.symbols))
	for _, s := range w.symbols {
		out = append(out, Chunk(s, opts.MaxChunkSize)...)
	}
	if opts.OmitContent {
		for i := range out {
			out[i].Content = nil
		}
	}
	return out, nil
}

// IsBinary reports whether data looks binary: a NUL within the first 8 KiB.
func IsBinary(data []byte) bool {
	if len(data) > binarySniffSize {
		data = data[:binarySniffSize]
	}
	return bytes.IndexByte(data, 0) >= 0
}

func sniffBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	buf := make([]byte, binarySniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("read source: %w", err)
	}
	return IsBinary(buf[:n]), nil
}

// walker holds the state of one traversal. emitted is keyed by node id and
// never outlives the tree it was built from.
type walker struct {
	source   []byte
	language lang.Language
	spec     *lang.LanguageSpec

	funcs, classes    map[string]bool
	decorated         map[string]bool
	typeDecls         map[string]bool
	typeDeclBodies    map[string]bool
	nameFieldOnly     map[string]bool
	requireBody       map[string]bool
	decoratedField    string
	typeDeclTypeField string

	emitted map[uintptr]bool
	symbols []Symbol
}

func newWalker(source []byte, language lang.Language) *walker {
	w := &walker{
		source:   source,
		language: language,
		spec:     lang.ForLanguage(language),
		funcs:    lang.KindSet(lang.FunctionKinds(language)),
		classes:  lang.KindSet(lang.ClassKinds(language)),
		emitted:  make(map[uintptr]bool),
	}
	spec := w.spec
	if spec == nil {
		spec = &lang.LanguageSpec{}
	}
	w.decorated = lang.KindSet(spec.DecoratedNodeTypes)
	w.decoratedField = spec.DecoratedDefinitionField
	w.typeDecls = lang.KindSet(spec.TypeDeclNodeTypes)
	w.typeDeclTypeField = spec.TypeDeclField
	w.typeDeclBodies = lang.KindSet(spec.TypeDeclBodyTypes)
	w.nameFieldOnly = lang.KindSet(spec.NameFieldOnlyTypes)
	w.requireBody = lang.KindSet(spec.RequireBodyTypes)
	return w
}

// visit walks the tree in pre-order. Every child is visited whether or not
// its parent emitted a symbol, so nested definitions come out flat.
func (w *walker) visit(node *tree_sitter.Node) {
	if node == nil {
		return
	}
	kind := node.Kind()
	switch {
	case w.emitted[node.Id()]:
		// Inner definition already emitted through its decorated wrapper.
	case w.decorated[kind]:
		w.visitDecorated(node)
	case w.typeDecls[kind]:
		if t := node.ChildByFieldName(w.typeDeclTypeField); t != nil && w.typeDeclBodies[t.Kind()] {
			w.emit(node, node, Class)
		}
	case w.funcs[kind]:
		w.emitDefinition(node, Function)
	case w.classes[kind]:
		w.emitDefinition(node, Class)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		w.visit(node.Child(i))
	}
}

// visitDecorated emits the wrapped definition using the wrapper's span, so
// decorator lines are part of the content, and the inner node's name.
func (w *walker) visitDecorated(node *tree_sitter.Node) {
	inner := node.ChildByFieldName(w.decoratedField)
	if inner == nil {
		return
	}
	var kind Kind
	switch {
	case w.funcs[inner.Kind()]:
		kind = Function
	case w.classes[inner.Kind()]:
		kind = Class
	default:
		return
	}
	w.emit(node, inner, kind)
	w.emitted[inner.Id()] = true
}

func (w *walker) emitDefinition(node *tree_sitter.Node, kind Kind) {
	// `struct point *p;` names a type without defining it.
	if w.requireBody[node.Kind()] && node.ChildByFieldName("body") == nil {
		return
	}
	w.emit(node, node, kind)
}

// emit records a symbol spanning span and named after def.
func (w *walker) emit(span, def *tree_sitter.Node, kind Kind) {
	w.emitted[span.Id()] = true

	var name string
	if w.nameFieldOnly[def.Kind()] {
		if n := def.ChildByFieldName("name"); n != nil {
			name = parser.NodeText(n, w.source)
		}
	} else {
		name = resolveName(def, w.source, w.spec)
	}
	if name == "" {
		name = lang.AnonymousName
	}

	content := parser.NodeText(span, w.source)
	start, end := parser.StartLine(span), parser.EndLine(span)
	w.symbols = append(w.symbols, Symbol{
		Kind:      kind,
		Name:      name,
		StartLine: start,
		EndLine:   end,
		Signature: signature(content, end > start),
		Docstring: extractDocstring(def, w.source, w.language),
		Content:   &content,
	})
}

// signature is the first line of text, with " ..." appended when the
// definition spans several lines.
func signature(text string, multiline bool) string {
	first, _, _ := strings.Cut(text, "\n")
	if multiline {
		first += " ..."
	}
	return strings.TrimSpace(first)
}
