package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// jsExtractor serves JavaScript, TypeScript, and TSX from one walker;
// the TypeScript-only node types simply never appear in plain JS trees.
type jsExtractor struct {
	dialect string
}

func newJSExtractor(dialect string) *jsExtractor {
	return &jsExtractor{dialect: dialect}
}

func (j *jsExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	classIDs := map[*sitter.Node]string{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "function_declaration", "generator_function_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindFunction)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = jsVisibility(node)
			symbols = append(symbols, sym)
			return false

		case "class_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindClass)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = jsVisibility(node)
			classIDs[node] = sym.ID
			symbols = append(symbols, sym)
			return true // descend for methods

		case "method_definition":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := model.KindMethod
			if name == "constructor" {
				kind = model.KindConstructor
			}
			sym := newSymbol(src, node, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			if cls := ancestorOfType(node, "class_declaration"); cls != nil {
				sym.ParentID = classIDs[cls]
			}
			if strings.HasPrefix(name, "#") {
				sym.Visibility = model.VisibilityPrivate
			} else {
				sym.Visibility = model.VisibilityPublic
			}
			symbols = append(symbols, sym)
			return false

		case "variable_declarator":
			name := fieldText(node, "name", src)
			value := node.ChildByFieldName("value")
			if name == "" {
				return true
			}
			kind := model.KindVariable
			anchor := node
			if value != nil {
				switch value.Type() {
				case "arrow_function", "function_expression", "function", "generator_function":
					kind = model.KindFunction
				}
			}
			if ancestorOfType(node, "function_declaration", "method_definition", "arrow_function") != nil && kind == model.KindVariable {
				return false // local variables are noise
			}
			sym := newSymbol(src, anchor, name, kind)
			sym.Signature = position.FirstLine(src.Text(node), signatureMax)
			sym.Visibility = jsVisibility(node)
			symbols = append(symbols, sym)
			return false

		case "interface_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindInterface)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = jsVisibility(node)
			symbols = append(symbols, sym)
			return false

		case "type_alias_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindType)
			sym.Signature = signature(src, node)
			sym.Visibility = jsVisibility(node)
			symbols = append(symbols, sym)
			return false

		case "enum_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindEnum)
			sym.Signature = signature(src, node)
			sym.Visibility = jsVisibility(node)
			symbols = append(symbols, sym)
			return false

		case "import_statement":
			symbols = append(symbols, jsImports(src, node)...)
			return false
		}
		return true
	})

	return dedupSymbols(symbols)
}

func (j *jsExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	for i := range symbols {
		if symbols[i].Kind == model.KindImport {
			relationships = append(relationships, newRelationship(src,
				symbols[i].ID,
				model.ExternalRef(j.dialect, symbols[i].Metadata["module"]),
				model.RelImports, symbols[i].StartLine, model.ConfidenceExternal))
		}
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "class_declaration", "interface_declaration":
			name := fieldText(node, "name", src)
			self := findSymbolOfKind(symbols, name, model.KindClass, model.KindInterface)
			if self == nil {
				return true
			}
			relationships = append(relationships, jsHeritage(src, node, self, symbols)...)

		case "call_expression":
			name := jsCallName(node, src)
			if name == "" {
				return true
			}
			span := position.NodeSpan(node)
			caller := src.ContainingSymbol(span, symbols)
			if caller == nil {
				return true
			}
			relationships = append(relationships, relationshipTo(src,
				caller.ID, name, j.dialect, model.RelCalls, span.StartLine, symbols))

		case "new_expression":
			ctor := node.ChildByFieldName("constructor")
			if ctor == nil {
				return true
			}
			name := src.Text(ctor)
			if ctor.Type() == "member_expression" {
				if prop := ctor.ChildByFieldName("property"); prop != nil {
					name = src.Text(prop)
				}
			}
			span := position.NodeSpan(node)
			caller := src.ContainingSymbol(span, symbols)
			if caller == nil {
				return true
			}
			relationships = append(relationships, relationshipTo(src,
				caller.ID, name, j.dialect, model.RelInstantiates, span.StartLine, symbols))
		}
		return true
	})

	return relationships
}

// jsHeritage reads extends and implements clauses off a declaration.
// Plain JS puts the parent class in class_heritage directly; TypeScript
// nests extends_clause and implements_clause inside it.
func jsHeritage(src *extract.Source, node *sitter.Node, self *model.Symbol, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	emit := func(target *sitter.Node, kind model.RelationshipKind) {
		name := src.Text(target)
		if target.Type() == "generic_type" {
			if n := firstDescendantOfType(target, "type_identifier", "identifier"); n != nil {
				name = src.Text(n)
			}
		}
		if name == "" {
			return
		}
		relationships = append(relationships, relationshipTo(src,
			self.ID, name, src.Language, kind, self.StartLine, symbols))
	}

	walk(node, func(n *sitter.Node) bool {
		switch n.Type() {
		case "extends_clause":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				emit(n.NamedChild(i), model.RelExtends)
			}
			return false
		case "implements_clause":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				emit(n.NamedChild(i), model.RelImplements)
			}
			return false
		case "class_body", "interface_body", "object_type":
			return false
		}
		return true
	})

	return relationships
}

func (j *jsExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "call_expression":
			if name := jsCallName(node, src); name != "" {
				identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
			}
		case "member_expression":
			if parent := node.Parent(); parent != nil &&
				(parent.Type() == "call_expression" || parent.Type() == "new_expression") {
				return true
			}
			if prop := node.ChildByFieldName("property"); prop != nil {
				identifiers = append(identifiers, newIdentifier(src, prop, src.Text(prop), model.IdentMemberAccess, symbols))
			}
		case "type_annotation":
			if n := firstDescendantOfType(node, "type_identifier"); n != nil {
				identifiers = append(identifiers, newIdentifier(src, n, src.Text(n), model.IdentTypeRef, symbols))
			}
			return false
		}
		return true
	})

	return identifiers
}

// InferTypes reads annotated return types off TypeScript signatures,
// the trailing ": T" after the parameter list.
func (j *jsExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	types := map[string]string{}
	for i := range symbols {
		if symbols[i].Kind != model.KindFunction && symbols[i].Kind != model.KindMethod {
			continue
		}
		sig := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(symbols[i].Signature), "{"))
		depth := 0
		last := -1
		for k, r := range sig {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					last = k
				}
			}
		}
		if last < 0 {
			continue
		}
		rest := strings.TrimSpace(sig[last+1:])
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		ret := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if ret != "" {
			types[symbols[i].ID] = ret
		}
	}
	return types
}

// jsVisibility: an export_statement ancestor makes a declaration public;
// everything else is module private.
func jsVisibility(node *sitter.Node) model.Visibility {
	if ancestorOfType(node, "export_statement") != nil {
		return model.VisibilityPublic
	}
	return model.VisibilityPrivate
}

// jsImports emits one import symbol per imported binding.
func jsImports(src *extract.Source, node *sitter.Node) []model.Symbol {
	symbols := []model.Symbol{}
	module := strings.Trim(fieldText(node, "source", src), "\"'`")

	record := func(n *sitter.Node, name string) {
		if name == "" {
			return
		}
		sym := newSymbol(src, n, name, model.KindImport)
		sym.Metadata = map[string]string{"module": module}
		symbols = append(symbols, sym)
	}

	clause := findChildByType(node, "import_clause")
	if clause == nil {
		// Side-effect import keeps the module name.
		name := module
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		record(node, name)
		return symbols
	}

	walk(clause, func(n *sitter.Node) bool {
		switch n.Type() {
		case "identifier":
			record(n, src.Text(n))
		case "import_specifier":
			name := n.ChildByFieldName("name")
			if alias := n.ChildByFieldName("alias"); alias != nil {
				name = alias
			}
			if name != nil {
				record(n, src.Text(name))
			}
			return false
		case "namespace_import":
			if id := firstDescendantOfType(n, "identifier"); id != nil {
				record(n, src.Text(id))
			}
			return false
		}
		return true
	})
	return symbols
}

// jsCallName names a call: identifier or the property of a member call.
func jsCallName(node *sitter.Node, src *extract.Source) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return src.Text(fn)
	case "member_expression":
		if prop := fn.ChildByFieldName("property"); prop != nil {
			return src.Text(prop)
		}
	}
	return ""
}
