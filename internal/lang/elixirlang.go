package lang

import (
	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// elixirExtractor handles Elixir, whose grammar models defmodule and
// def as ordinary calls. The definition keywords are recognized by
// their call target.
type elixirExtractor struct{}

func newElixirExtractor() *elixirExtractor { return &elixirExtractor{} }

var elixirDefKinds = map[string]model.SymbolKind{
	"defmodule":   model.KindModule,
	"defprotocol": model.KindInterface,
	"defstruct":   model.KindStruct,
	"def":         model.KindFunction,
	"defp":        model.KindFunction,
	"defmacro":    model.KindFunction,
	"defmacrop":   model.KindFunction,
}

func (e *elixirExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "ERROR" {
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true
		}
		if node.Type() != "call" {
			return true
		}
		keyword := elixirCallTarget(node, src)
		kind, ok := elixirDefKinds[keyword]
		if !ok {
			return true
		}
		name := elixirDefName(node, src, keyword)
		if name == "" {
			return true
		}
		sym := newSymbol(src, node, name, kind)
		sym.Signature = signature(src, node)
		sym.Doc = docComment(node, src)
		if keyword == "defp" || keyword == "defmacrop" {
			sym.Visibility = model.VisibilityPrivate
		} else {
			sym.Visibility = model.VisibilityPublic
		}
		symbols = append(symbols, sym)
		return true // modules nest functions
	})

	return dedupSymbols(symbols)
}

func (e *elixirExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "call" {
			return true
		}
		name := elixirCallTarget(node, src)
		if name == "" {
			return true
		}
		if _, isDef := elixirDefKinds[name]; isDef {
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

func (e *elixirExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "call" {
			return true
		}
		name := elixirCallTarget(node, src)
		if name == "" {
			return true
		}
		if _, isDef := elixirDefKinds[name]; isDef {
			return true
		}
		identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
		return true
	})

	return identifiers
}

func (e *elixirExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	return map[string]string{}
}

// elixirCallTarget reads a call's target: a plain identifier, or the
// right side of a dotted call.
func elixirCallTarget(node *sitter.Node, src *extract.Source) string {
	target := node.ChildByFieldName("target")
	if target == nil {
		return ""
	}
	switch target.Type() {
	case "identifier":
		return src.Text(target)
	case "dot":
		if n := target.ChildByFieldName("right"); n != nil {
			return src.Text(n)
		}
	}
	return ""
}

// elixirDefName extracts the defined name from a definition call's
// first argument: an alias for modules, an inner call or identifier for
// functions.
func elixirDefName(node *sitter.Node, src *extract.Source, keyword string) string {
	args := findChildByType(node, "arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	first := args.NamedChild(0)
	switch keyword {
	case "defmodule", "defprotocol":
		if first.Type() == "alias" {
			return src.Text(first)
		}
	case "defstruct":
		// The struct takes its enclosing module's name.
		if mod := ancestorOfType(node, "call"); mod != nil {
			if elixirCallTarget(mod, src) == "defmodule" {
				return elixirDefName(mod, src, "defmodule")
			}
		}
		return ""
	default:
		switch first.Type() {
		case "call":
			if n := first.ChildByFieldName("target"); n != nil && n.Type() == "identifier" {
				return src.Text(n)
			}
		case "identifier":
			return src.Text(first)
		case "binary_operator":
			// Guarded heads: def foo(x) when x > 0.
			if n := firstDescendantOfType(first, "identifier"); n != nil {
				return src.Text(n)
			}
		}
	}
	return ""
}
