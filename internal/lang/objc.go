package lang

func init() {
	Register(&LanguageSpec{
		Language:          ObjC,
		Grammar:           "tree-sitter-objc v1.2.1-0.20250131075517-181a81b8f23a",
		FunctionNodeTypes: []string{"function_definition", "method_definition"},
		ClassNodeTypes: []string{
			"class_interface",
			"class_implementation",
			"protocol_declaration",
		},
	})
}
