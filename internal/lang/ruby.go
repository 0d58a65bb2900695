package lang

func init() {
	Register(&LanguageSpec{
		Language:          Ruby,
		Grammar:           "tree-sitter-ruby v0.23.1",
		FunctionNodeTypes: []string{"method", "singleton_method"},
		ClassNodeTypes:    []string{"class", "module"},
	})
}
