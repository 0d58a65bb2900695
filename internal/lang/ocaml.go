package lang

func init() {
	spec := &LanguageSpec{
		Language: OCaml,
		Grammar:  "tree-sitter-ocaml v0.24.2",
		FunctionNodeTypes: []string{
			"value_definition", // let name args = body (contains let_binding)
		},
		ClassNodeTypes: []string{
			"type_definition",
			"class_definition",
			"module_definition",
		},
	}
	Register(spec)

	Register(&LanguageSpec{
		Language:          OCamlInterface,
		Grammar:           "tree-sitter-ocaml v0.24.2 (interface)",
		FunctionNodeTypes: []string{"value_specification"},
		ClassNodeTypes:    spec.ClassNodeTypes,
	})
}
