package lang

func init() {
	Register(&LanguageSpec{
		Language:          Rust,
		Grammar:           "tree-sitter-rust v0.24.0",
		FunctionNodeTypes: []string{"function_item"},
		ClassNodeTypes: []string{
			"struct_item",
			"enum_item",
			"trait_item",
			"impl_item",
		},
		// impl_item has no name; `impl Trait for Type` is named after Type.
		NameFields: map[string]string{"impl_item": "type"},
	})
}
