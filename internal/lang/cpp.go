package lang

func init() {
	Register(&LanguageSpec{
		Language:          CPP,
		Grammar:           "tree-sitter-cpp v0.23.4",
		// Not function_declarator: every definition contains one, and
		// bodiless prototypes are not symbols.
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_specifier", "struct_specifier"},

		NameFieldOnlyTypes: []string{"class_specifier", "struct_specifier"},
		RequireBodyTypes:   []string{"class_specifier", "struct_specifier"},
	})
}
