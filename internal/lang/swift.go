package lang

func init() {
	Register(&LanguageSpec{
		Language:          Swift,
		Grammar:           "tree-sitter-swift v0.0.3-deusdata.1",
		FunctionNodeTypes: []string{"function_declaration"},
		ClassNodeTypes: []string{
			"class_declaration",
			"protocol_declaration",
		},
	})
}
