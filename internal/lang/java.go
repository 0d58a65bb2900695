package lang

func init() {
	Register(&LanguageSpec{
		Language:          Java,
		Grammar:           "tree-sitter-java v0.23.5",
		FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"enum_declaration",
			"record_declaration",
		},
	})
}
