package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// bashExtractor handles shell scripts: function definitions, top-level
// variable assignments, and command invocations as calls.
type bashExtractor struct{}

func newBashExtractor() *bashExtractor { return &bashExtractor{} }

// shellBuiltins are control-flow and plumbing words that would drown
// real command edges.
var shellBuiltins = map[string]bool{
	"echo": true, "cd": true, "exit": true, "return": true, "shift": true,
	"set": true, "unset": true, "export": true, "local": true, "read": true,
	"printf": true, "true": true, "false": true, "test": true, "eval": true,
}

func (b *bashExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "function_definition":
			name := fieldText(node, "name", src)
			if name == "" {
				if n := findChildByType(node, "word"); n != nil {
					name = src.Text(n)
				}
			}
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindFunction)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			symbols = append(symbols, sym)
			return true // nested assignments still count

		case "variable_assignment":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := model.KindVariable
			if name == strings.ToUpper(name) && name != strings.ToLower(name) {
				kind = model.KindConstant
			}
			sym := newSymbol(src, node, name, kind)
			sym.Signature = position.FirstLine(src.Text(node), signatureMax)
			symbols = append(symbols, sym)
			return false
		}
		return true
	})

	return dedupSymbols(symbols)
}

func (b *bashExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "command" {
			return true
		}
		name := bashCommandName(node, src)
		if name == "" || shellBuiltins[name] {
			return true
		}
		span := position.NodeSpan(node)
		caller := src.ContainingSymbol(span, symbols)
		if caller == nil {
			return true
		}
		relationships = append(relationships, relationshipTo(src,
			caller.ID, name, src.Language, model.RelCalls, span.StartLine, symbols))
		return true
	})

	return relationships
}

func (b *bashExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "command":
			name := bashCommandName(node, src)
			if name != "" && !shellBuiltins[name] {
				identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
			}
		case "simple_expansion", "expansion":
			if n := firstDescendantOfType(node, "variable_name"); n != nil {
				identifiers = append(identifiers, newIdentifier(src, n, src.Text(n), model.IdentVariableRef, symbols))
			}
			return false
		}
		return true
	})

	return identifiers
}

func (b *bashExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	return map[string]string{}
}

func bashCommandName(node *sitter.Node, src *extract.Source) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	if w := firstDescendantOfType(nameNode, "word"); w != nil {
		return src.Text(w)
	}
	return src.Text(nameNode)
}
