package lang

func init() {
	Register(&LanguageSpec{
		Language:          CSharp,
		Grammar:           "tree-sitter-c-sharp v0.23.1",
		FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"struct_declaration",
			"record_declaration",
		},
	})
}
