package lang

func init() {
	Register(&LanguageSpec{
		Language:          Kotlin,
		Grammar:           "tree-sitter-kotlin v1.1.0",
		FunctionNodeTypes: []string{"function_declaration", "secondary_constructor"},
		ClassNodeTypes:    []string{"class_declaration", "object_declaration"},
	})
}
