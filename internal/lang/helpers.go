// Package lang hosts the language plugins and the grammar registry. Each
// plugin implements the extract.LanguageExtractor contract; languages
// without a dedicated plugin fall back to the table-driven generic
// extractor.
package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/identity"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// signatureMax bounds one-line signatures sliced from declarations.
const signatureMax = 200

// newSymbol builds a symbol for a node with all positional fields and the
// deterministic id filled in.
func newSymbol(src *extract.Source, node *sitter.Node, name string, kind model.SymbolKind) model.Symbol {
	span := position.NodeSpan(node)
	return model.Symbol{
		ID:          identity.GenerateID(name, span.StartLine, span.StartCol),
		Name:        name,
		Kind:        kind,
		Language:    src.Language,
		FilePath:    src.FilePath,
		StartLine:   span.StartLine,
		EndLine:     span.EndLine,
		StartCol:    span.StartCol,
		EndCol:      span.EndCol,
		StartByte:   int(node.StartByte()),
		EndByte:     int(node.EndByte()),
		CodeContext: src.ContextAround(span),
	}
}

// newIdentifier builds a usage-site record. The containing symbol is
// resolved now; the target is deliberately left empty for query-time
// resolution.
func newIdentifier(src *extract.Source, node *sitter.Node, name string, kind model.IdentifierKind, symbols []model.Symbol) model.Identifier {
	span := position.NodeSpan(node)
	ident := model.Identifier{
		ID:          identity.GenerateID(name, span.StartLine, span.StartCol),
		Name:        name,
		Kind:        kind,
		Language:    src.Language,
		FilePath:    src.FilePath,
		StartLine:   span.StartLine,
		EndLine:     span.EndLine,
		StartCol:    span.StartCol,
		EndCol:      span.EndCol,
		Confidence:  1.0,
		CodeContext: src.ContextAround(span),
	}
	if container := src.ContainingSymbol(span, symbols); container != nil {
		ident.ContainerID = container.ID
	}
	return ident
}

// newRelationship builds an edge with its derived id.
func newRelationship(src *extract.Source, fromID, toID string, kind model.RelationshipKind, line int, confidence float64) model.Relationship {
	return model.Relationship{
		ID:         identity.RelationshipID(fromID, toID, string(kind), line),
		FromID:     fromID,
		ToID:       toID,
		Kind:       kind,
		FilePath:   src.FilePath,
		Line:       line,
		Confidence: confidence,
	}
}

// relationshipTo resolves a target name against the local symbol set,
// falling back to an external placeholder at reduced confidence.
func relationshipTo(src *extract.Source, fromID, targetName, namespace string, kind model.RelationshipKind, line int, symbols []model.Symbol) model.Relationship {
	if target := findSymbol(symbols, targetName); target != nil {
		return newRelationship(src, fromID, target.ID, kind, line, model.ConfidenceResolved)
	}
	return newRelationship(src, fromID, model.ExternalRef(namespace, targetName), kind, line, model.ConfidenceExternal)
}

// findSymbol returns the first symbol with the given name, if any.
func findSymbol(symbols []model.Symbol, name string) *model.Symbol {
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i]
		}
	}
	return nil
}

// findSymbolOfKind narrows the lookup to a kind set.
func findSymbolOfKind(symbols []model.Symbol, name string, kinds ...model.SymbolKind) *model.Symbol {
	for i := range symbols {
		if symbols[i].Name != name {
			continue
		}
		for _, k := range kinds {
			if symbols[i].Kind == k {
				return &symbols[i]
			}
		}
	}
	return nil
}

// signature slices a declaration down to its one-line signature.
func signature(src *extract.Source, node *sitter.Node) string {
	return position.FirstLine(src.Text(node), signatureMax)
}

// docComment collects the comment block immediately preceding a
// declaration, stripping comment markers. Only comments ending on the
// line directly above count as documentation.
func docComment(node *sitter.Node, src *extract.Source) string {
	var parts []string
	cur := node
	for {
		prev := cur.PrevNamedSibling()
		if prev == nil || !strings.Contains(prev.Type(), "comment") {
			break
		}
		if int(cur.StartPoint().Row)-int(prev.EndPoint().Row) > 1 {
			break
		}
		parts = append([]string{cleanComment(src.Text(prev))}, parts...)
		cur = prev
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func cleanComment(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "///")
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "#")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimPrefix(strings.TrimSpace(line), "*")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// dedupSymbols drops later symbols whose id collides with an earlier
// one. Ids collide exactly when name and origin position match, which is
// the intended dedup signal for re-visited syntactic positions.
func dedupSymbols(symbols []model.Symbol) []model.Symbol {
	seen := make(map[string]bool, len(symbols))
	out := symbols[:0]
	for _, s := range symbols {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

// exportedByCase reports Go-style visibility: an upper-case initial is
// public.
func exportedByCase(name string) model.Visibility {
	if name == "" {
		return ""
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return model.VisibilityPublic
	}
	return model.VisibilityPrivate
}
