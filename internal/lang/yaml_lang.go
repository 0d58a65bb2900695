package lang

func init() {
	Register(&LanguageSpec{
		Language:          YAML,
		Grammar:           "tree-sitter-yaml v0.7.2",
		FunctionNodeTypes: []string{},
		ClassNodeTypes:    []string{},
	})
}
