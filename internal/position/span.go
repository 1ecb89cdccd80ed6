// Package position converts tree-sitter node ranges into the engine's
// 1-based line / 0-based column convention and slices source text safely.
package position

import (
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/model"
)

// UnknownText is returned when a node's byte range cannot be sliced out
// of the source buffer safely.
const UnknownText = "<unknown>"

// DefaultContextLines bounds the code-context window extracted around a
// span.
const DefaultContextLines = 3

// NodeSpan converts a node's range. Tree-sitter rows are 0-based; the
// engine reports 1-based lines and keeps 0-based columns.
func NodeSpan(node *sitter.Node) model.Span {
	return model.Span{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		StartCol:  int(node.StartPoint().Column),
		EndCol:    int(node.EndPoint().Column),
	}
}

// NodeText returns the verbatim source text of a node, or UnknownText if
// the node's byte range does not lie on valid boundaries of the buffer.
func NodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return UnknownText
	}
	s, ok := SafeSlice(src, int(node.StartByte()), int(node.EndByte()))
	if !ok {
		return UnknownText
	}
	return s
}

// SafeSlice extracts src[start:end] after validating that the range is in
// bounds and does not split a multi-byte character. It never panics;
// malformed ranges report ok=false.
func SafeSlice(src []byte, start, end int) (string, bool) {
	if start < 0 || end < start || end > len(src) {
		return "", false
	}
	if start < len(src) && !utf8.RuneStart(src[start]) {
		return "", false
	}
	if end < len(src) && !utf8.RuneStart(src[end]) {
		return "", false
	}
	return string(src[start:end]), true
}

// Context returns a bounded window of source lines around the span,
// contextLines before and after. Lines are joined verbatim; the window is
// clamped to the file.
func Context(lines []string, span model.Span, contextLines int) string {
	if len(lines) == 0 || span.StartLine < 1 {
		return ""
	}
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}
	start := span.StartLine - 1 - contextLines
	if start < 0 {
		start = 0
	}
	end := span.EndLine + contextLines
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// SplitLines splits a source buffer into lines once per call. Plugins
// share the result through the extraction context rather than re-splitting.
func SplitLines(src []byte) []string {
	return strings.Split(string(src), "\n")
}

// FirstLine trims a declaration's text down to a one-line signature:
// everything up to the first newline or opening brace, truncated if the
// declaration is a single very long line.
func FirstLine(text string, max int) string {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' || text[i] == '{' {
			return strings.TrimSpace(text[:i])
		}
	}
	if max > 0 && len(text) > max {
		// Back off to a rune boundary before cutting.
		cut := max
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return strings.TrimSpace(text[:cut]) + "..."
	}
	return strings.TrimSpace(text)
}
