// Package identity generates the deterministic ids that make extraction
// runs diffable: the same definition in unchanged source always hashes to
// the same id, which downstream incremental indexing depends on.
package identity

import (
	"fmt"

	"github.com/google/uuid"
)

// Fixed namespaces for name-based UUIDs. These must never change:
// every id in every consumer index is derived from them.
var (
	symbolNamespace       = uuid.MustParse("d3f8a2b4-6c1e-4f5a-9b7d-2e8c4a6f1b3d")
	relationshipNamespace = uuid.MustParse("7a1c5e93-2b8f-4d6a-b4e1-9f3d7c2a8e5b")
)

// GenerateID returns the stable id for a definition at the given origin
// position. It is a pure function of (name, start line, start column):
// two nodes with the same name at the same position collide, and the
// collision is the dedup signal for re-visits of the same syntactic
// position. Do not "fix" this into a strictly unique scheme.
func GenerateID(name string, startLine, startCol int) string {
	canonical := fmt.Sprintf("%s:%d:%d", name, startLine, startCol)
	return uuid.NewSHA1(symbolNamespace, []byte(canonical)).String()
}

// RelationshipID returns the stable id for an edge. It derives from the
// endpoints, kind, and source line, never from content, so unchanged
// code re-extracts to identical edges.
func RelationshipID(fromID, toID, kind string, line int) string {
	canonical := fmt.Sprintf("%s>%s:%s:%d", fromID, toID, kind, line)
	return uuid.NewSHA1(relationshipNamespace, []byte(canonical)).String()
}
