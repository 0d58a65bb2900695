package lang

// Shared by the typescript and tsx grammars, which use the same node vocabulary.
var (
	typeScriptFunctionTypes = []string{
		"function_declaration",
		"generator_function_declaration",
		"method_definition",
	}
	typeScriptClassTypes = []string{
		"class_declaration",
		"abstract_class_declaration",
		"interface_declaration",
	}
)

func init() {
	Register(&LanguageSpec{
		Language:          TypeScript,
		Grammar:           "tree-sitter-typescript v0.23.2",
		FunctionNodeTypes: typeScriptFunctionTypes,
		ClassNodeTypes:    typeScriptClassTypes,
	})
}
