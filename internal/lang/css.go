package lang

func init() {
	Register(&LanguageSpec{
		Language:          CSS,
		Grammar:           "tree-sitter-css v0.25.0",
		FunctionNodeTypes: []string{},
		ClassNodeTypes:    []string{},
	})
}
