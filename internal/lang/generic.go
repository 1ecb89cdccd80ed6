package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// nodeRule describes how one grammar node type maps to a symbol kind and
// where its name lives.
type nodeRule struct {
	kind      model.SymbolKind
	nameField string   // field holding the name node, usually "name"
	nameTypes []string // fallback: first descendant of any of these types
}

// genericSpec is the per-language table driving the fallback extractor:
// definition node types, call-site node types, and the field naming a
// call's target. Languages with richer structure get dedicated plugins;
// everything else is served by these tables so exotic-but-parseable
// files still degrade to best-effort symbols instead of nothing.
type genericSpec struct {
	definitions map[string]nodeRule
	calls       []string
	callField   string
}

// genericExtractor implements the plugin contract from a genericSpec.
type genericExtractor struct {
	spec genericSpec
}

func newGenericExtractor(spec genericSpec) *genericExtractor {
	return &genericExtractor{spec: spec}
}

func (g *genericExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "ERROR" {
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true
		}
		rule, ok := g.spec.definitions[node.Type()]
		if !ok {
			return true
		}
		name := nameFromRule(node, src, rule)
		if name == "" {
			return true // unrecognized shape, keep walking
		}
		sym := newSymbol(src, node, name, rule.kind)
		sym.Signature = signature(src, node)
		symbols = append(symbols, sym)
		return true
	})
	return dedupSymbols(symbols)
}

func (g *genericExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}
	if len(g.spec.calls) == 0 {
		return relationships
	}
	callTypes := make(map[string]bool, len(g.spec.calls))
	for _, t := range g.spec.calls {
		callTypes[t] = true
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if !callTypes[node.Type()] {
			return true
		}
		name := callName(node, src, g.spec.callField)
		if name == "" {
			return true
		}
		span := position.NodeSpan(node)
		caller := src.ContainingSymbol(span, symbols)
		if caller == nil {
			return true
		}
		relationships = append(relationships,
			relationshipTo(src, caller.ID, name, src.Language, model.RelCalls, span.StartLine, symbols))
		return true
	})
	return relationships
}

func (g *genericExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}
	if len(g.spec.calls) == 0 {
		return identifiers
	}
	callTypes := make(map[string]bool, len(g.spec.calls))
	for _, t := range g.spec.calls {
		callTypes[t] = true
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if !callTypes[node.Type()] {
			return true
		}
		name := callName(node, src, g.spec.callField)
		if name == "" {
			return true
		}
		identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
		return true
	})
	return identifiers
}

// InferTypes has nothing to work with in table-driven languages.
func (g *genericExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	return map[string]string{}
}

// nameFromRule extracts a definition's name per its rule: named field
// first, then declarator descent for C-family declarators, then the
// first matching descendant type.
func nameFromRule(node *sitter.Node, src *extract.Source, rule nodeRule) string {
	if rule.nameField != "" {
		if n := node.ChildByFieldName(rule.nameField); n != nil {
			return identifierText(n, src)
		}
	}
	if decl := node.ChildByFieldName("declarator"); decl != nil {
		if n := firstDescendantOfType(decl, "identifier", "field_identifier", "type_identifier"); n != nil {
			return src.Text(n)
		}
	}
	if len(rule.nameTypes) > 0 {
		if n := firstDescendantOfType(node, rule.nameTypes...); n != nil {
			return identifierText(n, src)
		}
	}
	return ""
}

// identifierText unwraps nested name nodes down to their text.
func identifierText(node *sitter.Node, src *extract.Source) string {
	switch node.Type() {
	case "identifier", "type_identifier", "field_identifier", "word",
		"simple_identifier", "constant", "variable_name", "tag_name",
		"property_identifier":
		return src.Text(node)
	}
	if node.NamedChildCount() == 0 {
		return strings.Trim(src.Text(node), `"'`)
	}
	if n := firstDescendantOfType(node, "identifier", "type_identifier", "word", "simple_identifier"); n != nil {
		return src.Text(n)
	}
	return strings.Trim(src.Text(node), `"'`)
}

// callName names a call site: the configured field, else the first
// identifier-like descendant.
func callName(node *sitter.Node, src *extract.Source, field string) string {
	var target *sitter.Node
	if field != "" {
		target = node.ChildByFieldName(field)
	}
	if target == nil {
		target = node.NamedChild(0)
	}
	if target == nil {
		return ""
	}
	switch target.Type() {
	case "identifier", "word", "simple_identifier":
		return src.Text(target)
	case "selector_expression", "member_expression", "attribute", "field_expression", "scoped_identifier":
		if n := target.ChildByFieldName("field"); n != nil {
			return src.Text(n)
		}
		if n := target.ChildByFieldName("property"); n != nil {
			return src.Text(n)
		}
		if n := target.ChildByFieldName("attribute"); n != nil {
			return src.Text(n)
		}
		if n := target.ChildByFieldName("name"); n != nil {
			return src.Text(n)
		}
	}
	if n := firstDescendantOfType(target, "identifier", "word", "simple_identifier"); n != nil {
		return src.Text(n)
	}
	return ""
}
