package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// pythonExtractor handles Python: classes with their method membership,
// decorators, docstrings, and underscore-convention visibility.
type pythonExtractor struct{}

func newPythonExtractor() *pythonExtractor { return &pythonExtractor{} }

func (p *pythonExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	classIDs := map[*sitter.Node]string{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "class_definition":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindClass)
			sym.Signature = signature(src, node)
			sym.Doc = pyDocstring(node, src)
			sym.Visibility = pyVisibility(name)
			if meta := pyDecorators(node, src); len(meta) > 0 {
				sym.Metadata = meta
			}
			classIDs[node] = sym.ID
			symbols = append(symbols, sym)
			return true // descend for methods and nested classes

		case "function_definition":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := model.KindFunction
			var parentID string
			if cls := ancestorOfType(node, "class_definition"); cls != nil {
				kind = model.KindMethod
				parentID = classIDs[cls]
			}
			sym := newSymbol(src, node, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = pyDocstring(node, src)
			sym.Visibility = pyVisibility(name)
			sym.ParentID = parentID
			if meta := pyDecorators(node, src); len(meta) > 0 {
				sym.Metadata = meta
			}
			symbols = append(symbols, sym)
			return false

		case "import_statement", "import_from_statement":
			symbols = append(symbols, pyImports(src, node)...)
			return false

		case "assignment":
			// Module-level assignments only; locals are noise.
			if ancestorOfType(node, "function_definition", "class_definition") != nil {
				return false
			}
			left := node.ChildByFieldName("left")
			if left == nil || left.Type() != "identifier" {
				return false
			}
			name := src.Text(left)
			kind := model.KindVariable
			if name == strings.ToUpper(name) && name != strings.ToLower(name) {
				kind = model.KindConstant
			}
			sym := newSymbol(src, left, name, kind)
			sym.Signature = position.FirstLine(src.Text(node), signatureMax)
			sym.Visibility = pyVisibility(name)
			symbols = append(symbols, sym)
			return false
		}
		return true
	})

	return dedupSymbols(symbols)
}

func (p *pythonExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	for i := range symbols {
		if symbols[i].Kind == model.KindImport {
			relationships = append(relationships, newRelationship(src,
				symbols[i].ID,
				model.ExternalRef("python", symbols[i].Metadata["module"]),
				model.RelImports, symbols[i].StartLine, model.ConfidenceExternal))
		}
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "class_definition":
			name := fieldText(node, "name", src)
			cls := findSymbolOfKind(symbols, name, model.KindClass)
			if cls == nil {
				return true
			}
			supers := node.ChildByFieldName("superclasses")
			if supers == nil {
				return true
			}
			for i := 0; i < int(supers.NamedChildCount()); i++ {
				super := supers.NamedChild(i)
				if super == nil {
					continue
				}
				superName := src.Text(super)
				if super.Type() == "attribute" {
					if attr := super.ChildByFieldName("attribute"); attr != nil {
						superName = src.Text(attr)
					}
				}
				if superName == "" || super.Type() == "keyword_argument" {
					continue
				}
				relationships = append(relationships, relationshipTo(src,
					cls.ID, superName, src.Language, model.RelExtends,
					cls.StartLine, symbols))
			}

		case "call":
			name := pyCallName(node, src)
			if name == "" {
				return true
			}
			span := position.NodeSpan(node)
			caller := src.ContainingSymbol(span, symbols)
			if caller == nil {
				return true
			}
			kind := model.RelCalls
			// Calling a known class instantiates it.
			if target := findSymbolOfKind(symbols, name, model.KindClass); target != nil {
				kind = model.RelInstantiates
			}
			relationships = append(relationships, relationshipTo(src,
				caller.ID, name, src.Language, kind, span.StartLine, symbols))
		}
		return true
	})

	return relationships
}

func (p *pythonExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "call":
			if name := pyCallName(node, src); name != "" {
				identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
			}
		case "attribute":
			if parent := node.Parent(); parent != nil && parent.Type() == "call" {
				return true
			}
			if attr := node.ChildByFieldName("attribute"); attr != nil {
				identifiers = append(identifiers, newIdentifier(src, attr, src.Text(attr), model.IdentMemberAccess, symbols))
			}
		}
		return true
	})

	return identifiers
}

// InferTypes reads annotated return types off signatures, the text
// between "->" and the trailing colon.
func (p *pythonExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	types := map[string]string{}
	for i := range symbols {
		if symbols[i].Kind != model.KindFunction && symbols[i].Kind != model.KindMethod {
			continue
		}
		sig := symbols[i].Signature
		idx := strings.Index(sig, "->")
		if idx < 0 {
			continue
		}
		ret := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig[idx+2:]), ":"))
		if ret != "" {
			types[symbols[i].ID] = ret
		}
	}
	return types
}

// pyVisibility applies the underscore convention: dunder names stay
// public, a single leading underscore means private.
func pyVisibility(name string) model.Visibility {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return model.VisibilityPublic
	}
	if strings.HasPrefix(name, "_") {
		return model.VisibilityPrivate
	}
	return model.VisibilityPublic
}

// pyDocstring returns the leading string expression of a definition
// body, quotes stripped.
func pyDocstring(def *sitter.Node, src *extract.Source) string {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" {
		return ""
	}
	str := firstDescendantOfType(first, "string")
	if str == nil {
		return ""
	}
	text := src.Text(str)
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			return strings.TrimSpace(text[len(q) : len(text)-len(q)])
		}
	}
	return strings.TrimSpace(text)
}

// pyDecorators collects decorator names from a wrapping
// decorated_definition.
func pyDecorators(def *sitter.Node, src *extract.Source) map[string]string {
	parent := def.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}
	names := []string{}
	for _, dec := range findChildrenByType(parent, "decorator") {
		text := strings.TrimPrefix(src.Text(dec), "@")
		if idx := strings.Index(text, "("); idx >= 0 {
			text = text[:idx]
		}
		if text != "" {
			names = append(names, text)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return map[string]string{"decorators": strings.Join(names, ",")}
}

// pyImports emits one import symbol per imported module or name.
func pyImports(src *extract.Source, node *sitter.Node) []model.Symbol {
	symbols := []model.Symbol{}

	record := func(n *sitter.Node, name, module string) {
		if name == "" {
			return
		}
		sym := newSymbol(src, n, name, model.KindImport)
		sym.Metadata = map[string]string{"module": module}
		symbols = append(symbols, sym)
	}

	if node.Type() == "import_statement" {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "dotted_name":
				full := src.Text(child)
				name := full
				if idx := strings.LastIndex(full, "."); idx >= 0 {
					name = full[idx+1:]
				}
				record(child, name, full)
			case "aliased_import":
				alias := child.ChildByFieldName("alias")
				mod := child.ChildByFieldName("name")
				if alias != nil && mod != nil {
					record(child, src.Text(alias), src.Text(mod))
				}
			}
		}
		return symbols
	}

	// from M import a, b as c
	module := fieldText(node, "module_name", src)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			if src.Text(child) == module {
				continue
			}
			record(child, src.Text(child), module)
		case "aliased_import":
			if alias := child.ChildByFieldName("alias"); alias != nil {
				record(child, src.Text(alias), module)
			}
		case "wildcard_import":
			record(child, "*", module)
		}
	}
	return symbols
}

// pyCallName names a call: identifier or the attribute of a dotted call.
func pyCallName(node *sitter.Node, src *extract.Source) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return src.Text(fn)
	case "attribute":
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return src.Text(attr)
		}
	}
	return ""
}
