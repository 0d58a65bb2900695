package lang

func init() {
	Register(&LanguageSpec{
		Language:          Bash,
		Grammar:           "tree-sitter-bash v0.25.1",
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{},
	})
}
