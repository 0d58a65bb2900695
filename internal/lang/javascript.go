package lang

func init() {
	Register(&LanguageSpec{
		Language: JavaScript,
		Grammar:  "tree-sitter-javascript v0.25.0",
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"method_definition",
			"arrow_function",
		},
		ClassNodeTypes: []string{"class_declaration"},
	})
}
