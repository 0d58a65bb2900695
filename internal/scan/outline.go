package scan

import (
	"fmt"
	"strings"
)

// RenderOutline renders reports as a markdown outline: a "## path (language)"
// heading per file, one "- kind: name (lines s-e)" line per symbol, and a
// blank line between files.
func RenderOutline(reports []FileReport) string {
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "## %s (%s)\n", r.Path, r.Language)
		if r.Error != "" {
			fmt.Fprintf(&b, "- error: %s\n", r.Error)
		}
		for _, s := range r.Symbols {
			fmt.Fprintf(&b, "- %s: %s (lines %d-%d)\n", s.Kind, s.Name, s.StartLine, s.EndLine)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()) + "\n"
}
