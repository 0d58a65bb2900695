package symbols

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

var identifierKinds = lang.KindSet(lang.IdentifierNodeTypes)

// declaratorNameKinds end a C/C++ declarator chain.
var declaratorNameKinds = lang.KindSet([]string{
	"identifier",
	"field_identifier",
	"qualified_identifier",
	"destructor_name",
	"operator_name",
})

// resolveName finds the identifier naming a definition node, or "" when none
// exists. Order: the name field (or the kind's own name field), the
// declarator chain, the enclosing variable declarator, the node itself, then
// the first identifier anywhere in the subtree.
func resolveName(node *tree_sitter.Node, source []byte, spec *lang.LanguageSpec) string {
	field := "name"
	if spec != nil {
		if f, ok := spec.NameFields[node.Kind()]; ok {
			field = f
		}
	}
	if n := node.ChildByFieldName(field); n != nil {
		return parser.NodeText(n, source)
	}
	if n := declaratorName(node); n != nil {
		return parser.NodeText(n, source)
	}
	// JS/TS: const handler = () => {}
	if p := node.Parent(); p != nil && p.Kind() == "variable_declarator" {
		if n := p.ChildByFieldName("name"); n != nil {
			return parser.NodeText(n, source)
		}
	}
	if identifierKinds[node.Kind()] {
		return parser.NodeText(node, source)
	}
	if n := firstIdentifier(node); n != nil {
		return parser.NodeText(n, source)
	}
	return ""
}

// declaratorName follows "declarator" fields down to the declared name:
// function_definition -> function_declarator -> identifier, through any
// pointer_declarator or reference_declarator on the way.
func declaratorName(node *tree_sitter.Node) *tree_sitter.Node {
	decl := node.ChildByFieldName("declarator")
	for decl != nil {
		if declaratorNameKinds[decl.Kind()] {
			return decl
		}
		next := decl.ChildByFieldName("declarator")
		if next == nil {
			// reference_declarator carries its inner declarator unnamed.
			for i := uint(0); i < decl.NamedChildCount(); i++ {
				child := decl.NamedChild(i)
				if child != nil && (declaratorNameKinds[child.Kind()] || child.Kind() == "function_declarator") {
					next = child
					break
				}
			}
		}
		decl = next
	}
	return nil
}

// firstIdentifier returns the first identifier-like node of a depth-first,
// pre-order search below node.
func firstIdentifier(node *tree_sitter.Node) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if identifierKinds[child.Kind()] {
			return child
		}
		if n := firstIdentifier(child); n != nil {
			return n
		}
	}
	return nil
}
