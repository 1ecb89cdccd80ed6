package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// sqlExtractor handles SQL DDL: tables, views, columns, and the join
// and foreign-key edges between tables. SQL dialects shift grammar node
// names around, so every lookup here degrades to nothing instead of
// assuming a shape.
type sqlExtractor struct{}

func newSQLExtractor() *sqlExtractor { return &sqlExtractor{} }

func (s *sqlExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	tableIDs := map[*sitter.Node]string{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "create_table":
			name := sqlObjectName(node, src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindTable)
			sym.Signature = signature(src, node)
			tableIDs[node] = sym.ID
			symbols = append(symbols, sym)
			return true // descend for columns

		case "create_view", "create_materialized_view":
			name := sqlObjectName(node, src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindView)
			sym.Signature = signature(src, node)
			symbols = append(symbols, sym)
			return false

		case "create_function", "create_procedure":
			name := sqlObjectName(node, src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindFunction)
			sym.Signature = signature(src, node)
			symbols = append(symbols, sym)
			return true

		case "column_definition":
			name := sqlColumnName(node, src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindField)
			sym.Signature = position.FirstLine(src.Text(node), signatureMax)
			if table := ancestorOfType(node, "create_table"); table != nil {
				sym.ParentID = tableIDs[table]
			}
			symbols = append(symbols, sym)
			return false
		}
		return true
	})

	return dedupSymbols(symbols)
}

func (s *sqlExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "join":
			target := sqlObjectName(node, src)
			if target == "" {
				return true
			}
			from := sqlStatementTable(node, src)
			if from == "" || from == target {
				return true
			}
			span := position.NodeSpan(node)
			fromID := model.ExternalRef("sql", from)
			if sym := findSymbolOfKind(symbols, from, model.KindTable, model.KindView); sym != nil {
				fromID = sym.ID
			}
			relationships = append(relationships, relationshipTo(src,
				fromID, target, "sql", model.RelJoins, span.StartLine, symbols))

		case "constraint", "constraints", "foreign_key_constraint":
			if !strings.Contains(strings.ToLower(src.Text(node)), "references") {
				return true
			}
			table := ancestorOfType(node, "create_table")
			if table == nil {
				return true
			}
			owner := findSymbolOfKind(symbols, sqlObjectName(table, src), model.KindTable)
			if owner == nil {
				return true
			}
			refs := findDescendantsOfType(node, "object_reference")
			if len(refs) == 0 {
				return true
			}
			// The referenced table is the last object reference in the
			// constraint text.
			target := sqlRefName(src.Text(refs[len(refs)-1]))
			if target == "" || target == owner.Name {
				return true
			}
			span := position.NodeSpan(node)
			relationships = append(relationships, relationshipTo(src,
				owner.ID, target, "sql", model.RelReferences, span.StartLine, symbols))
			return false
		}
		return true
	})

	return relationships
}

func (s *sqlExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "invocation":
			if n := firstDescendantOfType(node, "identifier"); n != nil {
				identifiers = append(identifiers, newIdentifier(src, node, src.Text(n), model.IdentCall, symbols))
			}
			return false
		case "field":
			if n := firstDescendantOfType(node, "identifier"); n != nil {
				identifiers = append(identifiers, newIdentifier(src, n, src.Text(n), model.IdentVariableRef, symbols))
			}
			return false
		}
		return true
	})

	return identifiers
}

func (s *sqlExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	return map[string]string{}
}

// sqlObjectName finds the first object reference under a node and takes
// its unqualified tail.
func sqlObjectName(node *sitter.Node, src *extract.Source) string {
	ref := firstDescendantOfType(node, "object_reference", "table_reference", "identifier")
	if ref == nil {
		return ""
	}
	return sqlRefName(src.Text(ref))
}

// sqlRefName strips schema qualification and quoting.
func sqlRefName(text string) string {
	text = strings.Trim(text, "`\"[]")
	if idx := strings.LastIndex(text, "."); idx >= 0 {
		text = text[idx+1:]
	}
	return strings.Trim(text, "`\"[]")
}

// sqlColumnName takes the leading identifier of a column definition.
func sqlColumnName(node *sitter.Node, src *extract.Source) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return sqlRefName(src.Text(n))
	}
	if n := firstDescendantOfType(node, "identifier", "column"); n != nil {
		return sqlRefName(src.Text(n))
	}
	return ""
}

// sqlStatementTable names the primary table of the statement a join
// belongs to: the first object reference outside any join clause.
func sqlStatementTable(join *sitter.Node, src *extract.Source) string {
	stmt := ancestorOfType(join, "statement", "select", "create_view", "create_materialized_view")
	if stmt == nil {
		return ""
	}
	var name string
	walk(stmt, func(n *sitter.Node) bool {
		if name != "" {
			return false
		}
		if n.Type() == "join" {
			return false
		}
		if n.Type() == "object_reference" || n.Type() == "table_reference" {
			name = sqlRefName(src.Text(n))
			return false
		}
		return true
	})
	return name
}
