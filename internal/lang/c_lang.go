package lang

func init() {
	Register(&LanguageSpec{
		Language:          C,
		Grammar:           "tree-sitter-c v0.24.1",
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"struct_specifier"},

		NameFieldOnlyTypes: []string{"struct_specifier"},
		RequireBodyTypes:   []string{"struct_specifier"},
	})
}
