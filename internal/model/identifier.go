package model

// IdentifierKind classifies a usage site.
type IdentifierKind string

const (
	IdentCall         IdentifierKind = "call"
	IdentMemberAccess IdentifierKind = "memberAccess"
	IdentVariableRef  IdentifierKind = "variableRef"
	IdentTypeRef      IdentifierKind = "typeRef"
)

// Identifier is a usage/reference site: a call, member access, or plain
// variable reference.
//
// TargetID is always empty immediately after extraction. Resolving a
// usage to the definition it refers to needs a whole-project symbol table
// and would be invalidated on every edit, so it is deferred to query time
// by the consumer; leaving it unresolved keeps single-file extraction
// independent of project state. ContainerID, by contrast, is purely
// lexical and is computed at creation time.
type Identifier struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      IdentifierKind `json:"kind"`
	Language  string         `json:"language"`
	FilePath  string         `json:"filePath"`
	StartLine int            `json:"startLine"`
	EndLine   int            `json:"endLine"`
	StartCol  int            `json:"startCol"`
	EndCol    int            `json:"endCol"`

	ContainerID string  `json:"containerId,omitempty"`
	TargetID    string  `json:"targetId,omitempty"`
	Confidence  float64 `json:"confidence"`
	CodeContext string  `json:"codeContext,omitempty"`
}
