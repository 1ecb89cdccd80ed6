package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// rustExtractor handles Rust. Impl blocks are resolved in two phases:
// the first walk only records each block's byte range and target type
// name, and a second pass relocates the block by its start byte once
// the full symbol table exists, so methods parent to their type and
// trait edges bind even when the impl precedes the type in the file.
type rustExtractor struct{}

func newRustExtractor() *rustExtractor { return &rustExtractor{} }

// implRecord is a deferred impl block: where it starts and what it
// targets.
type implRecord struct {
	startByte uint32
	typeName  string
	traitName string
	line      int
}

func (r *rustExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	records := []implRecord{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "impl_item":
			if rec, ok := implRecordOf(node, src); ok {
				records = append(records, rec)
			}
			return true // descend: member functions

		case "ERROR":
			symbols = append(symbols, recoverSymbols(src, node)...)
			return true

		case "function_item":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := model.KindFunction
			if impl := ancestorOfType(node, "impl_item", "trait_item"); impl != nil {
				kind = model.KindMethod
			}
			sym := newSymbol(src, node, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = rustDocComment(node, src)
			sym.Visibility = rustVisibility(node, src)
			symbols = append(symbols, sym)
			return false

		case "struct_item", "enum_item", "trait_item", "union_item", "type_item", "mod_item":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			kind := map[string]model.SymbolKind{
				"struct_item": model.KindStruct,
				"enum_item":   model.KindEnum,
				"trait_item":  model.KindTrait,
				"union_item":  model.KindUnion,
				"type_item":   model.KindType,
				"mod_item":    model.KindModule,
			}[node.Type()]
			sym := newSymbol(src, node, name, kind)
			sym.Signature = signature(src, node)
			sym.Doc = rustDocComment(node, src)
			sym.Visibility = rustVisibility(node, src)
			symbols = append(symbols, sym)
			return true // descend: trait methods, mod contents

		case "const_item", "static_item":
			name := fieldText(node, "name", src)
			if name == "" {
				return true
			}
			sym := newSymbol(src, node, name, model.KindConstant)
			sym.Signature = position.FirstLine(src.Text(node), signatureMax)
			sym.Visibility = rustVisibility(node, src)
			symbols = append(symbols, sym)
			return false

		case "use_declaration":
			path := fieldText(node, "argument", src)
			if path == "" {
				return true
			}
			name := rustUseName(path)
			sym := newSymbol(src, node, name, model.KindImport)
			sym.Metadata = map[string]string{"path": path}
			symbols = append(symbols, sym)
			return false
		}
		return true
	})

	symbols = dedupSymbols(symbols)
	bindImplMembers(tree.RootNode(), src, records, symbols)
	return symbols
}

// implRecordOf captures the first phase of an impl block: only the byte
// offset and target names, never node handles.
func implRecordOf(node *sitter.Node, src *extract.Source) (implRecord, bool) {
	rec := implRecord{
		startByte: node.StartByte(),
		line:      int(node.StartPoint().Row) + 1,
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		rec.typeName = rustTypeName(typeNode, src)
	}
	if traitNode := node.ChildByFieldName("trait"); traitNode != nil {
		rec.traitName = rustTypeName(traitNode, src)
	}
	return rec, rec.typeName != ""
}

// bindImplMembers is the second phase: each recorded block is relocated
// by byte offset against the complete table, and its member functions
// take the resolved type as parent. The type may be declared anywhere
// in the file, including after the impl.
func bindImplMembers(root *sitter.Node, src *extract.Source, records []implRecord, symbols []model.Symbol) {
	for _, rec := range records {
		block := nodeAtByte(root, rec.startByte, "impl_item")
		if block == nil {
			continue
		}
		target := findSymbolOfKind(symbols, rec.typeName,
			model.KindStruct, model.KindEnum, model.KindUnion, model.KindType)
		if target == nil {
			continue
		}
		for _, fn := range findDescendantsOfType(block, "function_item") {
			name := fieldText(fn, "name", src)
			line := int(fn.StartPoint().Row) + 1
			for i := range symbols {
				if symbols[i].Kind == model.KindMethod &&
					symbols[i].Name == name && symbols[i].StartLine == line {
					symbols[i].ParentID = target.ID
				}
			}
		}
	}
}

func (r *rustExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	relationships := []model.Relationship{}

	for i := range symbols {
		if symbols[i].Kind == model.KindImport {
			relationships = append(relationships, newRelationship(src,
				symbols[i].ID,
				model.ExternalRef("rust", symbols[i].Metadata["path"]),
				model.RelImports, symbols[i].StartLine, model.ConfidenceExternal))
		}
	}

	// Phase one: record every impl block without resolving anything.
	records := []implRecord{}
	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "impl_item":
			if rec, ok := implRecordOf(node, src); ok {
				records = append(records, rec)
			}

		case "call_expression":
			name := rustCallName(node, src)
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
		}
		return true
	})

	// Phase two: relocate each block by byte offset and resolve against
	// the now-complete table.
	for _, rec := range records {
		block := nodeAtByte(tree.RootNode(), rec.startByte, "impl_item")
		if block == nil {
			continue
		}
		target := findSymbolOfKind(symbols, rec.typeName,
			model.KindStruct, model.KindEnum, model.KindUnion, model.KindType)
		if rec.traitName != "" {
			fromID := model.ExternalRef("rust", rec.typeName)
			if target != nil {
				fromID = target.ID
			}
			relationships = append(relationships, newRelationship(src,
				fromID, resolveOrExternal(symbols, rec.traitName, "rust"),
				model.RelImplements, rec.line, implConfidence(symbols, rec.traitName)))
		}
		if target == nil {
			continue
		}
		// Methods inside the block reference the type they extend.
		for _, fn := range findDescendantsOfType(block, "function_item") {
			name := fieldText(fn, "name", src)
			method := findSymbolOfKind(symbols, name, model.KindMethod)
			if method == nil {
				continue
			}
			relationships = append(relationships, newRelationship(src,
				method.ID, target.ID, model.RelUses,
				int(fn.StartPoint().Row)+1, model.ConfidenceResolved))
		}
	}

	return relationships
}

func (r *rustExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	identifiers := []model.Identifier{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "call_expression":
			if name := rustCallName(node, src); name != "" {
				identifiers = append(identifiers, newIdentifier(src, node, name, model.IdentCall, symbols))
			}
		case "field_expression":
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

// InferTypes reads the return type after "->" off signatures.
func (r *rustExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	types := map[string]string{}
	for i := range symbols {
		if symbols[i].Kind != model.KindFunction && symbols[i].Kind != model.KindMethod {
			continue
		}
		sig := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(symbols[i].Signature), "{"))
		idx := strings.Index(sig, "->")
		if idx < 0 {
			continue
		}
		ret := strings.TrimSpace(sig[idx+2:])
		if ret != "" {
			types[symbols[i].ID] = ret
		}
	}
	return types
}

// nodeAtByte finds the node of the given type starting at exactly the
// stored byte offset.
func nodeAtByte(root *sitter.Node, startByte uint32, nodeType string) *sitter.Node {
	var found *sitter.Node
	walk(root, func(n *sitter.Node) bool {
		if found != nil || n.StartByte() > startByte || n.EndByte() <= startByte {
			return false
		}
		if n.StartByte() == startByte && n.Type() == nodeType {
			found = n
			return false
		}
		return true
	})
	return found
}

func resolveOrExternal(symbols []model.Symbol, name, namespace string) string {
	if sym := findSymbol(symbols, name); sym != nil {
		return sym.ID
	}
	return model.ExternalRef(namespace, name)
}

func implConfidence(symbols []model.Symbol, name string) float64 {
	if findSymbol(symbols, name) != nil {
		return model.ConfidenceResolved
	}
	return model.ConfidenceExternal
}

// rustTypeName strips generics off a type node.
func rustTypeName(node *sitter.Node, src *extract.Source) string {
	switch node.Type() {
	case "type_identifier":
		return src.Text(node)
	case "generic_type":
		if n := node.ChildByFieldName("type"); n != nil {
			return rustTypeName(n, src)
		}
	case "scoped_type_identifier", "scoped_identifier":
		if n := node.ChildByFieldName("name"); n != nil {
			return src.Text(n)
		}
	case "reference_type":
		if n := firstDescendantOfType(node, "type_identifier"); n != nil {
			return src.Text(n)
		}
	}
	if n := firstDescendantOfType(node, "type_identifier"); n != nil {
		return src.Text(n)
	}
	return ""
}

// rustUseName takes the last path segment of a use declaration, the
// alias when present.
func rustUseName(path string) string {
	if idx := strings.Index(path, " as "); idx >= 0 {
		return strings.TrimSpace(path[idx+4:])
	}
	path = strings.TrimSuffix(path, ";")
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		path = path[idx+2:]
	}
	return strings.TrimSpace(path)
}

// rustVisibility checks for a visibility_modifier child.
func rustVisibility(node *sitter.Node, src *extract.Source) model.Visibility {
	if vis := findChildByType(node, "visibility_modifier"); vis != nil {
		return model.VisibilityPublic
	}
	return model.VisibilityPrivate
}

// rustDocComment joins the /// line comments preceding an item.
func rustDocComment(node *sitter.Node, src *extract.Source) string {
	lines := []string{}
	for prev := node.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		if prev.Type() != "line_comment" && prev.Type() != "block_comment" {
			break
		}
		text := src.Text(prev)
		if !strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "/**") {
			break
		}
		lines = append([]string{cleanComment(text)}, lines...)
	}
	return strings.Join(lines, "\n")
}

// rustCallName names a call expression: identifier, path tail, or
// method name.
func rustCallName(node *sitter.Node, src *extract.Source) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return src.Text(fn)
	case "field_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return src.Text(field)
		}
	case "scoped_identifier":
		if name := fn.ChildByFieldName("name"); name != nil {
			return src.Text(name)
		}
	}
	return ""
}
