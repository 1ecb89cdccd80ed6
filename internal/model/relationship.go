package model

// RelationshipKind classifies a directed edge between two symbols.
type RelationshipKind string

const (
	RelExtends      RelationshipKind = "extends"
	RelImplements   RelationshipKind = "implements"
	RelCalls        RelationshipKind = "calls"
	RelUses         RelationshipKind = "uses"
	RelImports      RelationshipKind = "imports"
	RelReferences   RelationshipKind = "references"
	RelJoins        RelationshipKind = "joins"
	RelInstantiates RelationshipKind = "instantiates"
	RelComposition  RelationshipKind = "composition"
)

// Confidence values used by plugins when emitting relationships.
// ConfidenceResolved means the target symbol was found locally;
// ConfidenceExternal marks heuristically matched or external targets,
// which consumers must treat as best effort.
const (
	ConfidenceResolved = 1.0
	ConfidenceExternal = 0.8
)

// Relationship is a directed, typed edge between two symbols. ToID may
// name a synthetic placeholder (see ExternalRef) when the target is not
// defined in the extracted file: a builtin, an unresolved interface, a
// resource path.
//
// The ID derives from (from, to, kind, line) rather than content, so
// re-extraction of unchanged code yields identical edges and consumers
// can diff extraction runs.
type Relationship struct {
	ID         string            `json:"id"`
	FromID     string            `json:"fromId"`
	ToID       string            `json:"toId"`
	Kind       RelationshipKind  `json:"kind"`
	FilePath   string            `json:"filePath"`
	Line       int               `json:"line"`
	Confidence float64           `json:"confidence"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExternalRef builds the namespaced placeholder id used when a
// relationship target is not locally defined.
func ExternalRef(namespace, name string) string {
	return "external:" + namespace + ":" + name
}
