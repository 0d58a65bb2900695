package symbols

import (
	"strings"
	"unicode/utf8"
)

// Chunk splits s into line-aligned pieces of at most maxSize characters each.
//
// A symbol whose content fits, has no content, or maxSize <= 0 is returned
// unchanged as the single element. Otherwise every boundary falls just after
// the last '\n' in the window; a window without one is split hard on a
// character boundary. The pieces concatenate back to the original content in
// ChunkIndex order.
func Chunk(s Symbol, maxSize int) []Symbol {
	content := s.Text()
	if maxSize <= 0 || len(content) == 0 || utf8.RuneCountInString(content) <= maxSize {
		return []Symbol{s}
	}

	type span struct{ start, end int }
	var spans []span
	for cursor := 0; cursor < len(content); {
		end := advanceRunes(content, cursor, maxSize)
		if end < len(content) {
			if p := strings.LastIndexByte(content[cursor:end], '\n'); p > 0 {
				end = cursor + p + 1
			}
		}
		spans = append(spans, span{cursor, end})
		cursor = end
	}

	out := make([]Symbol, len(spans))
	startLine := s.StartLine
	for i, sp := range spans {
		text := content[sp.start:sp.end]
		breaks := strings.Count(text, "\n")
		out[i] = Symbol{
			Kind:         s.Kind,
			Name:         s.Name,
			StartLine:    startLine,
			EndLine:      startLine + breaks,
			Signature:    s.Signature,
			Docstring:    s.Docstring,
			Content:      strPtr(text),
			ChunkIndex:   intPtr(i),
			ChunkCount:   intPtr(len(spans)),
			ParentSymbol: strPtr(s.Name),
			Overflow:     boolPtr(true),
		}
		startLine += breaks
	}
	return out
}

// advanceRunes returns the byte offset n characters past from, capped at len(s).
// Invalid UTF-8 bytes count as one character each.
func advanceRunes(s string, from, n int) int {
	i := from
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
