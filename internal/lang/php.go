package lang

func init() {
	Register(&LanguageSpec{
		Language:          PHP,
		Grammar:           "tree-sitter-php v0.24.2 (php_only)",
		FunctionNodeTypes: []string{"function_definition", "method_declaration"},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"trait_declaration",
		},
	})
}
