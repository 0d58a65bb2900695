package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedLanguage is returned when neither an override nor the file
// extension yields a language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// extensions maps lowercased file extensions (without the dot) to languages.
// Not every entry has a compiled grammar; those fail later with a grammar error.
var extensions = map[string]Language{
	// Scripting & shells
	"py":     Python,
	"python": Python,
	"pyi":    Python,
	"rb":     Ruby,
	"php":    PHP,
	"pl":     "perl",
	"ps1":    "powershell",
	"psm1":   "powershell",
	"sh":     Bash,
	"bash":   Bash,
	"zsh":    Bash,
	"lua":    Lua,
	"r":      "r",

	// Web & frontend
	"js":   JavaScript,
	"jsx":  JavaScript,
	"mjs":  JavaScript,
	"cjs":  JavaScript,
	"ts":   TypeScript,
	"mts":  TypeScript,
	"tsx":  TSX,
	"css":  CSS,
	"scss": "scss",
	"html": HTML,
	"htm":  HTML,

	// Systems / compiled
	"c":     C,
	"h":     C,
	"cpp":   CPP,
	"cxx":   CPP,
	"cc":    CPP,
	"hpp":   CPP,
	"hh":    CPP,
	"m":     ObjC,
	"mm":    ObjC,
	"rs":    Rust,
	"go":    Go,
	"swift": Swift,
	"cs":    CSharp,
	"nim":   "nim",
	"zig":   Zig,
	"asm":   "asm",
	"s":     "asm",

	// JVM / functional
	"java":  Java,
	"kt":    Kotlin,
	"kts":   Kotlin,
	"scala": Scala,
	"clj":   "clojure",
	"ml":    OCaml,
	"mli":   OCamlInterface,
	"hs":    Haskell,

	// Data / markup / configuration
	"json": "json",
	"yml":  YAML,
	"yaml": YAML,
	"toml": TOML,
	"ini":  "ini",
	"md":   "markdown",
	"xml":  "xml",
	"sql":  "sql",

	// Misc
	"dart":   "dart",
	"elm":    "elm",
	"erl":    "erlang",
	"erlang": "erlang",
	"f90":    "fortran",
	"fs":     "fsharp",
	"jl":     "julia",
	"tex":    "latex",
	"ada":    "ada",
	"ino":    "arduino",
}

// Detect resolves the language of path. A non-empty override wins
// unconditionally; otherwise the lowercased extension is looked up.
func Detect(path, override string) (Language, error) {
	if override != "" {
		return Language(override), nil
	}
	if l, ok := ForExtension(filepath.Ext(path)); ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: cannot detect tree-sitter language for %s", ErrUnsupportedLanguage, path)
}

// ForExtension returns the language for a file extension. The leading dot is
// optional and case is ignored.
func ForExtension(ext string) (Language, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return "", false
	}
	l, ok := extensions[ext]
	return l, ok
}

// Extensions returns the extension table as ext -> language, for listing.
func Extensions() map[string]Language {
	out := make(map[string]Language, len(extensions))
	for k, v := range extensions {
		out[k] = v
	}
	return out
}

// KnownLanguages returns every language reachable through the extension
// table, sorted and deduplicated.
func KnownLanguages() []Language {
	seen := map[Language]bool{}
	var out []Language
	for _, l := range extensions {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
