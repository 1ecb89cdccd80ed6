package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// goExtractor handles Go sources structurally: declarations, receiver
// binding, struct embedding, and capitalization-based visibility.
type goExtractor struct{}

func newGoExtractor() *goExtractor { return &goExtractor{} }

func (g *goExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "function_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindFunction)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = exportedByCase(name)
			symbols = append(symbols, sym)
			return false

		case "method_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindMethod)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = exportedByCase(name)
			if recv := receiverTypeName(node, src); recv != "" {
				sym.Metadata = map[string]string{"receiver": recv}
			}
			symbols = append(symbols, sym)
			return false

		case "type_spec":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := model.KindType
			if typeNode := node.ChildByFieldName("type"); typeNode != nil {
				switch typeNode.Type() {
				case "struct_type":
					kind = model.KindStruct
				case "interface_type":
					kind = model.KindInterface
				}
			}
			decl := ancestorOfType(node, "type_declaration")
			anchor := node
			if decl != nil {
				anchor = decl
			}
			sym := newSymbol(src, anchor, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(anchor, src)
			sym.Visibility = exportedByCase(name)
			symbols = append(symbols, sym)
			if kind == model.KindStruct {
				symbols = append(symbols, g.structFields(src, node, sym.ID)...)
			}
			return false

		case "const_spec", "var_spec":
			kind := model.KindConstant
			if node.Type() == "var_spec" {
				kind = model.KindVariable
			}
			for _, ident := range findChildrenByType(node, "identifier") {
				name := src.Text(ident)
				if name == "" || name == "_" {
					continue
				}
				sym := newSymbol(src, ident, name, kind)
				sym.Signature = position.FirstLine(src.Text(node), signatureMax)
				sym.Visibility = exportedByCase(name)
				symbols = append(symbols, sym)
			}
			return false

		case "import_spec":
			path := strings.Trim(fieldText(node, "path", src), `"`)
			if path == "" {
				return true
			}
			name := path
			if idx := strings.LastIndex(path, "/"); idx >= 0 {
				name = path[idx+1:]
			}
			if alias := fieldText(node, "name", src); alias != "" && alias != "_" && alias != "." {
				name = alias
			}
			sym := newSymbol(src, node, name, model.KindImport)
			sym.Metadata = map[string]string{"path": path}
			symbols = append(symbols, sym)
			return false
		}
		return true
	})

	return dedupSymbols(bindReceivers(symbols))
}

// structFields emits a field symbol per field_declaration under a
// struct_type, parented to the struct.
func (g *goExtractor) structFields(src *extract.Source, typeSpec *sitter.Node, parentID string) []model.Symbol {
	fields := []model.Symbol{}
	structType := typeSpec.ChildByFieldName("type")
	if structType == nil {
		return fields
	}
	for _, decl := range findDescendantsOfType(structType, "field_declaration") {
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			// Embedded field: the type name doubles as the field name.
			if n := firstDescendantOfType(decl, "type_identifier"); n != nil {
				nameNode = n
			}
		}
		if nameNode == nil {
			continue
		}
		name := src.Text(nameNode)
		sym := newSymbol(src, decl, name, model.KindField)
		sym.ParentID = parentID
		sym.Visibility = exportedByCase(name)
		if typeNode := decl.ChildByFieldName("type"); typeNode != nil {
			sym.Signature = position.FirstLine(src.Text(typeNode), signatureMax)
		}
		fields = append(fields, sym)
	}
	return fields
}

// bindReceivers parents each method onto the type named by its receiver
// once the full symbol list exists.
func bindReceivers(symbols []model.Symbol) []model.Symbol {
	for i := range symbols {
		if symbols[i].Kind != model.KindMethod {
			continue
		}
		recv := symbols[i].Metadata["receiver"]
		if recv == "" {
			continue
		}
		for j := range symbols {
			if symbols[j].Name != recv {
				continue
			}
			switch symbols[j].Kind {
			case model.KindStruct, model.KindInterface, model.KindType:
				symbols[i].ParentID = symbols[j].ID
			}
			if symbols[i].ParentID != "" {
				break
			}
		}
	}
	return symbols
}

func (g *goExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	for i := range symbols {
		// Import edges come straight off the symbol list.
		if symbols[i].Kind == model.KindImport {
			path := symbols[i].Metadata["path"]
			relationships = append(relationships, newRelationship(src,
				symbols[i].ID,
				model.ExternalRef("go", path),
				model.RelImports, symbols[i].StartLine, model.ConfidenceExternal))
		}
		// Embedded struct fields whose name equals their type are
		// composition edges to that type.
		if symbols[i].Kind == model.KindField && symbols[i].ParentID != "" &&
			symbols[i].Name == strings.TrimPrefix(symbols[i].Signature, "*") {
			relationships = append(relationships, relationshipTo(src,
				symbols[i].ParentID, symbols[i].Name, src.Language,
				model.RelComposition, symbols[i].StartLine, symbols))
		}
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		name := goCallName(node, src)
		if name == "" {
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

func (g *goExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "call_expression":
			if name := goCallName(node, src); name != "" {
				identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
			}
		case "selector_expression":
			// Selectors that are call targets are already recorded as
			// calls; bare selectors are member accesses.
			if parent := node.Parent(); parent != nil && parent.Type() == "call_expression" {
				return true
			}
			if field := node.ChildByFieldName("field"); field != nil {
				identifiers = append(identifiers, newIdentifier(src, field, src.Text(field), model.IdentMemberAccess, symbols))
			}
		}
		return true
	})

	return identifiers
}

// InferTypes reads declared return types off function and method
// signatures. Multi-value returns keep their parenthesized form.
func (g *goExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	types := map[string]string{}
	for i := range symbols {
		if symbols[i].Kind != model.KindFunction && symbols[i].Kind != model.KindMethod {
			continue
		}
		ret := goReturnType(symbols[i].Signature)
		if ret != "" {
			types[symbols[i].ID] = ret
		}
	}
	return types
}

// goReturnType slices the return clause off a one-line signature: the
// text after the parameter list, skipping a leading receiver group.
func goReturnType(sig string) string {
	sig = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), "{"))
	rest := strings.TrimSpace(strings.TrimPrefix(sig, "func"))
	if strings.HasPrefix(rest, "(") {
		end := matchParen(rest)
		if end < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[end+1:])
	}
	open := strings.Index(rest, "(")
	if open < 0 {
		return ""
	}
	end := matchParen(rest[open:])
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[open+end+1:])
}

// matchParen returns the index of the parenthesis closing the group
// that opens the string.
func matchParen(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// receiverTypeName strips pointer and generic markers off a method's
// receiver type.
func receiverTypeName(method *sitter.Node, src *extract.Source) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	if n := firstDescendantOfType(recv, "type_identifier"); n != nil {
		return src.Text(n)
	}
	return ""
}

// goCallName names a call: plain identifier or the field of a selector.
func goCallName(node *sitter.Node, src *extract.Source) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return src.Text(fn)
	case "selector_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return src.Text(field)
		}
	case "parenthesized_expression", "generic_function":
		if n := firstDescendantOfType(fn, "identifier", "field_identifier"); n != nil {
			return src.Text(n)
		}
	}
	return ""
}

func fieldText(node *sitter.Node, field string, src *extract.Source) string {
	n := node.ChildByFieldName(field)
	if n == nil {
		return ""
	}
	return src.Text(n)
}
