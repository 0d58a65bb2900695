package symbols

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

// extractDocstring returns the docstring of a definition node, or nil.
// Only Python docstrings are recognised; leading comments in other languages
// are not read.
func extractDocstring(node *tree_sitter.Node, source []byte, language lang.Language) *string {
	if language != lang.Python {
		return nil
	}
	doc, ok := extractPythonDocstring(node, source)
	if !ok {
		return nil
	}
	return &doc
}

// extractPythonDocstring reads a PEP 257 docstring: a bare string literal as
// the first statement of the body block.
func extractPythonDocstring(node *tree_sitter.Node, source []byte) (string, bool) {
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return "", false
	}
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return "", false
	}
	strNode := first.NamedChild(0)
	if strNode == nil || strNode.Kind() != "string" {
		return "", false
	}
	return cleanPythonDocstring(parser.NodeText(strNode, source)), true
}

// cleanPythonDocstring removes the string prefix and quote delimiters and
// dedents continuation lines.
func cleanPythonDocstring(s string) string {
	s = strings.TrimLeft(s, "rRbBuUfF")
	for _, delim := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(delim) && strings.HasPrefix(s, delim) && strings.HasSuffix(s, delim) {
			s = s[len(delim) : len(s)-len(delim)]
			break
		}
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 1 {
		return strings.TrimSpace(s)
	}
	// Dedent: find minimum indentation of non-empty continuation lines.
	minIndent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= minIndent {
				lines[i] = lines[i][minIndent:]
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
