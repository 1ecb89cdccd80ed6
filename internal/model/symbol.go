// Package model defines the shared vocabulary of the extraction engine:
// symbols (definition sites), identifiers (usage sites), and relationships
// (directed edges between symbols). Every language plugin emits into these
// types; they carry no behavior beyond construction helpers.
package model

// SymbolKind classifies a definition site.
type SymbolKind string

const (
	KindFunction    SymbolKind = "function"
	KindMethod      SymbolKind = "method"
	KindConstructor SymbolKind = "constructor"
	KindDestructor  SymbolKind = "destructor"
	KindOperator    SymbolKind = "operator"
	KindClass       SymbolKind = "class"
	KindStruct      SymbolKind = "struct"
	KindInterface   SymbolKind = "interface"
	KindUnion       SymbolKind = "union"
	KindEnum        SymbolKind = "enum"
	KindEnumMember  SymbolKind = "enumMember"
	KindNamespace   SymbolKind = "namespace"
	KindModule      SymbolKind = "module"
	KindVariable    SymbolKind = "variable"
	KindConstant    SymbolKind = "constant"
	KindField       SymbolKind = "field"
	KindProperty    SymbolKind = "property"
	KindImport      SymbolKind = "import"
	KindExport      SymbolKind = "export"
	KindTrait       SymbolKind = "trait"
	KindType        SymbolKind = "type"
	KindEvent       SymbolKind = "event"
	KindTable       SymbolKind = "table"
	KindView        SymbolKind = "view"
	KindSection     SymbolKind = "section"
	KindUnknown     SymbolKind = "unknown"
)

// Visibility describes a symbol's declared access level, where the
// language has one.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
)

// ContentType tags symbols whose body is not ordinary code, e.g. embedded
// documentation extracted from markup files.
type ContentType string

const (
	ContentTypeCode          ContentType = "code"
	ContentTypeDocumentation ContentType = "documentation"
)

// Symbol is a single definition site. Symbols are created once at
// extraction time and are immutable afterward; a run always rebuilds the
// full set from scratch.
//
// Lines are 1-based, columns 0-based. ID is a pure function of
// (name, start line, start column): two nodes at the same name and origin
// position intentionally collide, which downstream consumers rely on to
// deduplicate re-visits of the same syntactic position.
type Symbol struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	Language  string     `json:"language"`
	FilePath  string     `json:"filePath"`
	StartLine int        `json:"startLine"`
	EndLine   int        `json:"endLine"`
	StartCol  int        `json:"startCol"`
	EndCol    int        `json:"endCol"`
	StartByte int        `json:"startByte"`
	EndByte   int        `json:"endByte"`

	Signature  string            `json:"signature,omitempty"`
	Doc        string            `json:"doc,omitempty"`
	Visibility Visibility        `json:"visibility,omitempty"`
	ParentID   string            `json:"parentId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`

	// SemanticGroup and GroupConfidence are reserved for a later
	// cross-language linking pass; the extraction core never sets them.
	SemanticGroup   string  `json:"semanticGroup,omitempty"`
	GroupConfidence float64 `json:"groupConfidence,omitempty"`

	CodeContext string      `json:"codeContext,omitempty"`
	ContentType ContentType `json:"contentType,omitempty"`
}

// Span returns the symbol's position as a standalone value, usable with
// the containment resolver.
func (s *Symbol) Span() Span {
	return Span{
		StartLine: s.StartLine,
		EndLine:   s.EndLine,
		StartCol:  s.StartCol,
		EndCol:    s.EndCol,
	}
}

// Span is a source range in the engine's convention: 1-based lines,
// 0-based columns.
type Span struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
	StartCol  int `json:"startCol"`
	EndCol    int `json:"endCol"`
}

// Contains reports whether the given position falls within the span.
// Column constraints apply only on the first and last line of a
// multi-line span; interior lines always satisfy them.
func (sp Span) Contains(line, col int) bool {
	if line < sp.StartLine || line > sp.EndLine {
		return false
	}
	if sp.StartLine == sp.EndLine {
		return col >= sp.StartCol && col <= sp.EndCol
	}
	if line == sp.StartLine {
		return col >= sp.StartCol
	}
	if line == sp.EndLine {
		return col <= sp.EndCol
	}
	return true
}
