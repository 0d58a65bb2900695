package lang

func init() {
	Register(&LanguageSpec{
		Language:          HTML,
		Grammar:           "tree-sitter-html v0.23.2",
		FunctionNodeTypes: []string{},
		ClassNodeTypes:    []string{},
	})
}
