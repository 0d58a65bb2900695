package lang

func init() {
	Register(&LanguageSpec{
		Language: Haskell,
		Grammar:  "tree-sitter-haskell (tree-sitter-grammars 20251125)",
		FunctionNodeTypes: []string{
			"function", // function binding with name, patterns, match
		},
		ClassNodeTypes: []string{
			"class",     // type class declaration
			"data_type", // algebraic data type
			"newtype",
		},
	})
}
