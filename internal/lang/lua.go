package lang

func init() {
	Register(&LanguageSpec{
		Language:          Lua,
		Grammar:           "tree-sitter-lua v0.4.1",
		FunctionNodeTypes: []string{"function_declaration"},
		ClassNodeTypes:    []string{},
	})
}
