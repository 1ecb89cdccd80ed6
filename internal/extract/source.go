package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/containment"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// Source is the call-scoped context threaded through one extraction
// call: the file path, resolved language, the read-only source buffer,
// and a lazily split line cache. It exists for exactly one call and is
// never shared across files or goroutines, which replaces any notion of
// an ambient or global text cache.
type Source struct {
	FilePath string
	Language string
	Content  []byte

	ContextLines int

	priorities containment.Priorities
	lines      []string
}

// NewSource builds the context for one extraction call.
func NewSource(filePath, language string, content []byte, priorities containment.Priorities) *Source {
	return &Source{
		FilePath:     filePath,
		Language:     language,
		Content:      content,
		ContextLines: position.DefaultContextLines,
		priorities:   priorities,
	}
}

// Lines returns the source split into lines, splitting at most once per
// call.
func (s *Source) Lines() []string {
	if s.lines == nil {
		s.lines = position.SplitLines(s.Content)
	}
	return s.lines
}

// Text returns the verbatim text of a node, with safe-slicing fallback.
func (s *Source) Text(node *sitter.Node) string {
	return position.NodeText(node, s.Content)
}

// ContextAround returns the bounded code-context window for a span.
func (s *Source) ContextAround(span model.Span) string {
	return position.Context(s.Lines(), span, s.ContextLines)
}

// ContainingSymbol resolves the innermost enclosing symbol for a span's
// start position, honoring the language's priority table.
func (s *Source) ContainingSymbol(span model.Span, symbols []model.Symbol) *model.Symbol {
	pos := containment.Position{Line: span.StartLine, Col: span.StartCol}
	return containment.FindContainingSymbol(pos, symbols, s.priorities)
}
