package lang

func init() {
	Register(&LanguageSpec{
		Language:          TOML,
		Grammar:           "tree-sitter-toml v0.7.0",
		FunctionNodeTypes: []string{},
		ClassNodeTypes:    []string{},
	})
}
