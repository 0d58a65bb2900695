package lang

func init() {
	Register(&LanguageSpec{
		Language:          Go,
		Grammar:           "tree-sitter-go v0.25.0",
		FunctionNodeTypes: []string{"function_declaration", "method_declaration"},
		ClassNodeTypes:    []string{"type_spec"},

		// type_spec covers `type S struct{}`, `type I interface{}` and `type N int`;
		// `type A = B` is a separate type_alias kind and never matches.
		TypeDeclNodeTypes: []string{"type_spec"},
		TypeDeclField:     "type",
		TypeDeclBodyTypes: []string{"struct_type", "interface_type"},
	})
}
