package parser

import (
	"unsafe"

	tree_sitter_swift "github.com/alex-pinkus/tree-sitter-swift/bindings/go"
	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	tree_sitter_objc "github.com/tree-sitter-grammars/tree-sitter-objc/bindings/go"
	tree_sitter_toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	tree_sitter_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_haskell "github.com/tree-sitter/tree-sitter-haskell/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_ocaml "github.com/tree-sitter/tree-sitter-ocaml/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/DeusData/codesym/internal/lang"
)

// grammars lists the compiled-in grammar constructors. Languages resolvable by
// extension but absent here fail with ErrGrammarUnavailable.
var grammars = map[lang.Language]func() unsafe.Pointer{
	lang.Python:         tree_sitter_python.Language,
	lang.JavaScript:     tree_sitter_javascript.Language,
	lang.TypeScript:     tree_sitter_typescript.LanguageTypescript,
	lang.TSX:            tree_sitter_typescript.LanguageTSX,
	lang.Go:             tree_sitter_go.Language,
	lang.Rust:           tree_sitter_rust.Language,
	lang.Java:           tree_sitter_java.Language,
	lang.C:              tree_sitter_c.Language,
	lang.CPP:            tree_sitter_cpp.Language,
	lang.CSharp:         tree_sitter_c_sharp.Language,
	lang.PHP:            tree_sitter_php.LanguagePHPOnly,
	lang.Ruby:           tree_sitter_ruby.Language,
	lang.Lua:            tree_sitter_lua.Language,
	lang.Scala:          tree_sitter_scala.Language,
	lang.Kotlin:         tree_sitter_kotlin.Language,
	lang.Bash:           tree_sitter_bash.Language,
	lang.HTML:           tree_sitter_html.Language,
	lang.CSS:            tree_sitter_css.Language,
	lang.Haskell:        tree_sitter_haskell.Language,
	lang.OCaml:          tree_sitter_ocaml.LanguageOCaml,
	lang.OCamlInterface: tree_sitter_ocaml.LanguageOCamlInterface,
	lang.Zig:            tree_sitter_zig.Language,
	lang.YAML:           tree_sitter_yaml.Language,
	lang.TOML:           tree_sitter_toml.Language,
	lang.ObjC:           tree_sitter_objc.Language,
	lang.Swift:          tree_sitter_swift.Language,
}

// HasGrammar reports whether a grammar for l is compiled in.
func HasGrammar(l lang.Language) bool {
	_, ok := grammars[l]
	return ok
}
