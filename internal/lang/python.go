package lang

func init() {
	Register(&LanguageSpec{
		Language:          Python,
		Grammar:           "tree-sitter-python v0.25.0",
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_definition"},

		DecoratedNodeTypes:       []string{"decorated_definition"},
		DecoratedDefinitionField: "definition",
	})
}
