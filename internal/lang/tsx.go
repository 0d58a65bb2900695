package lang

func init() {
	Register(&LanguageSpec{
		Language:          TSX,
		Grammar:           "tree-sitter-typescript v0.23.2 (tsx)",
		FunctionNodeTypes: typeScriptFunctionTypes,
		ClassNodeTypes:    typeScriptClassTypes,
	})
}
