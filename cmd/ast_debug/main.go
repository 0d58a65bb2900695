// Command ast_debug prints the concrete syntax tree of a source file, one
// node per line, to help write node taxonomies and queries.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/parser"
)

func printAST(node *tree_sitter.Node, source []byte, field string, indent int, maxText int) {
	if node == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	if field != "" {
		prefix += field + ": "
	}
	text := parser.NodeText(node, source)
	if len(text) > maxText {
		text = text[:maxText] + "..."
	}
	named := ""
	if !node.IsNamed() {
		named = " (anon)"
	}
	fmt.Printf("%s%s%s [%d-%d] %q\n", prefix, node.Kind(), named, parser.StartLine(node), parser.EndLine(node), text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printAST(node.Child(i), source, node.FieldNameForChild(uint32(i)), indent+1, maxText)
	}
}

func main() {
	language := flag.String("language", "", "language override")
	maxText := flag.Int("text", 60, "truncate node text to this many bytes")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ast_debug [-language L] [-text N] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	l, err := lang.Detect(path, *language)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	tree, err := parser.NewCache().Parse(l, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer tree.Close()

	fmt.Printf("=== %s (%s) ===\n", path, l)
	printAST(tree.RootNode(), source, "", 0, *maxText)
}
