package symbols

// Kind classifies a symbol.
type Kind string

const (
	Function Kind = "function"
	Class    Kind = "class"
)

// Symbol is one extracted function or class, or one chunk of it.
//
// The four chunk fields are either all nil or all set. When set,
// 0 <= *ChunkIndex < *ChunkCount and *ParentSymbol == Name.
type Symbol struct {
	Kind      Kind    `json:"kind" yaml:"kind"`
	Name      string  `json:"name" yaml:"name"`
	StartLine int     `json:"start_line" yaml:"start_line"`
	EndLine   int     `json:"end_line" yaml:"end_line"`
	Signature string  `json:"signature" yaml:"signature"`
	Docstring *string `json:"docstring" yaml:"docstring"`
	Content   *string `json:"content" yaml:"content"`

	ChunkIndex   *int    `json:"chunk_index,omitempty" yaml:"chunk_index,omitempty"`
	ChunkCount   *int    `json:"chunk_count,omitempty" yaml:"chunk_count,omitempty"`
	ParentSymbol *string `json:"parent_symbol,omitempty" yaml:"parent_symbol,omitempty"`
	Overflow     *bool   `json:"overflow,omitempty" yaml:"overflow,omitempty"`
}

// IsChunk reports whether s is one piece of a split symbol.
func (s Symbol) IsChunk() bool {
	return s.Overflow != nil && *s.Overflow
}

// Text returns the content or "" when it was omitted.
func (s Symbol) Text() string {
	if s.Content == nil {
		return ""
	}
	return *s.Content
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
