package lang

func init() {
	Register(&LanguageSpec{
		Language:          Zig,
		Grammar:           "tree-sitter-zig v1.1.2",
		FunctionNodeTypes: []string{"function_declaration", "test_declaration"},
		ClassNodeTypes:    []string{"struct_declaration", "enum_declaration", "union_declaration"},
	})
}
