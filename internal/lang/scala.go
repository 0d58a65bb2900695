package lang

func init() {
	Register(&LanguageSpec{
		Language:          Scala,
		Grammar:           "tree-sitter-scala v0.24.0",
		FunctionNodeTypes: []string{"function_definition", "function_declaration"},
		ClassNodeTypes: []string{
			"class_definition",
			"object_definition",
			"trait_definition",
		},
	})
}
