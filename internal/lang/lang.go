package lang

import "sort"

// Language identifies a tree-sitter grammar (e.g. "python", "csharp").
type Language string

const (
	Python         Language = "python"
	JavaScript     Language = "javascript"
	TypeScript     Language = "typescript"
	TSX            Language = "tsx"
	Go             Language = "go"
	Rust           Language = "rust"
	Java           Language = "java"
	C              Language = "c"
	CPP            Language = "cpp"
	CSharp         Language = "csharp"
	PHP            Language = "php"
	Ruby           Language = "ruby"
	Lua            Language = "lua"
	Scala          Language = "scala"
	Kotlin         Language = "kotlin"
	Bash           Language = "bash"
	HTML           Language = "html"
	CSS            Language = "css"
	Haskell        Language = "haskell"
	OCaml          Language = "ocaml"
	OCamlInterface Language = "ocaml_interface"
	Zig            Language = "zig"
	YAML           Language = "yaml"
	TOML           Language = "toml"
	ObjC           Language = "objc"
	Swift          Language = "swift"

	// Unknown is the language reported for files whose extraction failed.
	Unknown Language = "unknown"
)

// AnonymousName is the symbol name used when no identifier can be resolved.
const AnonymousName = "<anonymous>"

// DefaultFunctionNodeTypes applies to languages that register no function kinds.
// These are the common C-like/Java-like declaration kinds.
var DefaultFunctionNodeTypes = []string{
	"function_definition",
	"function_declaration",
	"method_definition",
	"method_declaration",
	"generator_function_declaration",
	"impl_item",
}

// IdentifierNodeTypes are node kinds whose own text is a usable symbol name.
var IdentifierNodeTypes = []string{
	"identifier",
	"name",
	"property_identifier",
	"type_identifier",
	"simple_identifier",
	"field_identifier",
	"constant",
}

// LanguageSpec defines the tree-sitter node kinds used to classify symbols.
// Kind strings belong to the grammar version named in Grammar; upgrading a
// grammar module can rename them silently, so each spec is covered by tests.
type LanguageSpec struct {
	Language Language
	// Grammar is the grammar module and version the kinds were taken from.
	Grammar string

	// FunctionNodeTypes lists function/method kinds. nil means "use
	// DefaultFunctionNodeTypes"; an empty non-nil slice means "none".
	FunctionNodeTypes []string
	ClassNodeTypes    []string

	// DecoratedNodeTypes wrap an inner definition reachable through
	// DecoratedDefinitionField (Python decorated_definition).
	DecoratedNodeTypes       []string
	DecoratedDefinitionField string

	// TypeDeclNodeTypes cover struct/interface/alias declarations with a single
	// kind. They emit a class only when the TypeDeclField child is one of
	// TypeDeclBodyTypes.
	TypeDeclNodeTypes []string
	TypeDeclField     string
	TypeDeclBodyTypes []string

	// NameFieldOnlyTypes take their name from the "name" field alone and are
	// reported as AnonymousName without it. Kinds in RequireBodyTypes are skipped
	// when they carry no "body" field (C `struct Foo *p` is a reference).
	NameFieldOnlyTypes []string
	RequireBodyTypes   []string

	// NameFields maps a node kind to the field holding its name when that is not "name".
	NameFields map[string]string
}

// registry maps languages to their taxonomy.
var registry = map[Language]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	registry[spec.Language] = spec
}

// ForLanguage returns the LanguageSpec for a language, or nil when none is registered.
func ForLanguage(l Language) *LanguageSpec {
	return registry[l]
}

// RegisteredLanguages returns all languages with a registered taxonomy, sorted.
func RegisteredLanguages() []Language {
	out := make([]Language, 0, len(registry))
	for l := range registry {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FunctionKinds returns the function node kinds for a language, falling back
// to DefaultFunctionNodeTypes for unlisted languages.
func FunctionKinds(l Language) []string {
	spec := registry[l]
	if spec == nil || spec.FunctionNodeTypes == nil {
		return DefaultFunctionNodeTypes
	}
	return spec.FunctionNodeTypes
}

// ClassKinds returns the class node kinds for a language. There is no default:
// unlisted languages yield no classes.
func ClassKinds(l Language) []string {
	spec := registry[l]
	if spec == nil {
		return nil
	}
	return spec.ClassNodeTypes
}

// KindSet builds a lookup set from a kind list.
func KindSet(kinds []string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
