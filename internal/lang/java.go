package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// javaExtractor handles Java: modifier-keyword visibility, class
// membership, extends and implements edges.
type javaExtractor struct{}

func newJavaExtractor() *javaExtractor { return &javaExtractor{} }

func (j *javaExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	classIDs := map[*sitter.Node]string{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := map[string]model.SymbolKind{
				"class_declaration":           model.KindClass,
				"interface_declaration":       model.KindInterface,
				"enum_declaration":            model.KindEnum,
				"record_declaration":          model.KindClass,
				"annotation_type_declaration": model.KindInterface,
			}[node.Type()]
			sym := newSymbol(src, node, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = javaVisibility(node, src)
			classIDs[node] = sym.ID
			symbols = append(symbols, sym)
			return true

		case "method_declaration", "constructor_declaration":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := model.KindMethod
			if node.Type() == "constructor_declaration" {
				kind = model.KindConstructor
			}
			sym := newSymbol(src, node, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = docComment(node, src)
			sym.Visibility = javaVisibility(node, src)
			if cls := ancestorOfType(node, "class_declaration", "interface_declaration", "enum_declaration", "record_declaration"); cls != nil {
				sym.ParentID = classIDs[cls]
			}
			symbols = append(symbols, sym)
			return false

		case "field_declaration":
			for _, decl := range findChildrenByType(node, "variable_declarator") {
				name := fieldText(decl, "name", src)
				if name == "" {
					continue
				}
				sym := newSymbol(src, decl, name, model.KindField)
				sym.Signature = position.FirstLine(src.Text(node), signatureMax)
				sym.Visibility = javaVisibility(node, src)
				if cls := ancestorOfType(node, "class_declaration", "interface_declaration", "enum_declaration"); cls != nil {
					sym.ParentID = classIDs[cls]
				}
				symbols = append(symbols, sym)
			}
			return false

		case "enum_constant":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindEnumMember)
			sym.Visibility = model.VisibilityPublic
			if cls := ancestorOfType(node, "enum_declaration"); cls != nil {
				sym.ParentID = classIDs[cls]
			}
			symbols = append(symbols, sym)
			return false

		case "import_declaration":
			path := ""
			if n := firstDescendantOfType(node, "scoped_identifier", "identifier"); n != nil {
				path = src.Text(n)
			}
			if path == "" {
				return true
			}
			name := path
			if idx := strings.LastIndex(path, "."); idx >= 0 {
				name = path[idx+1:]
			}
			sym := newSymbol(src, node, name, model.KindImport)
			sym.Metadata = map[string]string{"path": path}
			symbols = append(symbols, sym)
			return false
		}
		return true
	})

	return dedupSymbols(symbols)
}

func (j *javaExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	for i := range symbols {
		if symbols[i].Kind == model.KindImport {
			relationships = append(relationships, newRelationship(src,
				symbols[i].ID,
				model.ExternalRef("java", symbols[i].Metadata["path"]),
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
			if super := node.ChildByFieldName("superclass"); super != nil {
				if n := firstDescendantOfType(super, "type_identifier"); n != nil {
					relationships = append(relationships, relationshipTo(src,
						self.ID, src.Text(n), src.Language, model.RelExtends,
						self.StartLine, symbols))
				}
			}
			if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
				kind := model.RelImplements
				if node.Type() == "interface_declaration" {
					kind = model.RelExtends
				}
				for _, n := range findDescendantsOfType(ifaces, "type_identifier") {
					relationships = append(relationships, relationshipTo(src,
						self.ID, src.Text(n), src.Language, kind,
						self.StartLine, symbols))
				}
			}

		case "method_invocation":
			name := fieldText(node, "name", src)
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

		case "object_creation_expression":
			typeNode := node.ChildByFieldName("type")
			if typeNode == nil {
				return true
			}
			name := src.Text(typeNode)
			if n := firstDescendantOfType(typeNode, "type_identifier"); n != nil {
				name = src.Text(n)
			}
			span := position.NodeSpan(node)
			caller := src.ContainingSymbol(span, symbols)
			if caller == nil {
				return true
			}
			relationships = append(relationships, relationshipTo(src,
				caller.ID, name, src.Language, model.RelInstantiates,
				span.StartLine, symbols))
		}
		return true
	})

	return relationships
}

func (j *javaExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "method_invocation":
			if name := fieldText(node, "name", src); name != "" {
				identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
			}
		case "field_access":
			if field := node.ChildByFieldName("field"); field != nil {
				identifiers = append(identifiers, newIdentifier(src, field, src.Text(field), model.IdentMemberAccess, symbols))
			}
		}
		return true
	})

	return identifiers
}

// InferTypes reads the declared return type off method signatures, the
// token before the method name.
func (j *javaExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	types := map[string]string{}
	for i := range symbols {
		if symbols[i].Kind != model.KindMethod {
			continue
		}
		sig := symbols[i].Signature
		idx := strings.Index(sig, symbols[i].Name+"(")
		if idx <= 0 {
			continue
		}
		head := strings.Fields(strings.TrimSpace(sig[:idx]))
		if len(head) == 0 {
			continue
		}
		ret := head[len(head)-1]
		switch ret {
		case "", "void", "public", "private", "protected", "static", "final", "abstract":
			continue
		}
		types[symbols[i].ID] = ret
	}
	return types
}

// javaVisibility reads the modifier keywords; package private when none
// is present.
func javaVisibility(node *sitter.Node, src *extract.Source) model.Visibility {
	mods := findChildByType(node, "modifiers")
	if mods == nil {
		return model.VisibilityProtected
	}
	text := src.Text(mods)
	switch {
	case strings.Contains(text, "public"):
		return model.VisibilityPublic
	case strings.Contains(text, "private"):
		return model.VisibilityPrivate
	default:
		return model.VisibilityProtected
	}
}
