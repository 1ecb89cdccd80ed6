package export

import (
	"fmt"
	"io"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"symgraph/internal/extract"
	"symgraph/internal/model"
	"symgraph/internal/version"
)

// writeSCIP serializes the graphs as a binary SCIP index. Symbols use
// the "local" scheme with the deterministic extraction id, so the same
// source always yields byte-identical symbol names.
func writeSCIP(w io.Writer, graphs []*extract.FileGraph) error {
	data, err := proto.Marshal(buildSCIPIndex(graphs))
	if err != nil {
		return fmt.Errorf("marshal scip index: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func buildSCIPIndex(graphs []*extract.FileGraph) *scippb.Index {
	index := &scippb.Index{
		Metadata: &scippb.Metadata{
			Version: scippb.ProtocolVersion_UnspecifiedProtocolVersion,
			ToolInfo: &scippb.ToolInfo{
				Name:    "symgraph",
				Version: version.Version,
			},
			ProjectRoot:          "file:///",
			TextDocumentEncoding: scippb.TextEncoding_UTF8,
		},
	}

	for _, fg := range graphs {
		doc := &scippb.Document{
			RelativePath: fg.FilePath,
			Language:     fg.Language,
		}
		for i := range fg.Symbols {
			sym := &fg.Symbols[i]
			name := scipSymbolName(sym)
			info := &scippb.SymbolInformation{
				Symbol:      name,
				DisplayName: sym.Name,
				Kind:        scipKind(sym.Kind),
			}
			if sym.Doc != "" {
				info.Documentation = []string{sym.Doc}
			}
			doc.Symbols = append(doc.Symbols, info)
			doc.Occurrences = append(doc.Occurrences, &scippb.Occurrence{
				Range:       scipRange(sym.StartLine, sym.StartCol, sym.EndLine, sym.EndCol),
				Symbol:      name,
				SymbolRoles: int32(scippb.SymbolRole_Definition),
			})
		}
		for i := range fg.Identifiers {
			ident := &fg.Identifiers[i]
			doc.Occurrences = append(doc.Occurrences, &scippb.Occurrence{
				Range:  scipRange(ident.StartLine, ident.StartCol, ident.EndLine, ident.EndCol),
				Symbol: "local " + ident.ID,
			})
		}
		index.Documents = append(index.Documents, doc)
	}

	return index
}

// scipRange converts a 1-based line span to SCIP's 0-based range form:
// three elements when the occurrence stays on one line, four otherwise.
func scipRange(startLine, startCol, endLine, endCol int) []int32 {
	if startLine == endLine {
		return []int32{int32(startLine - 1), int32(startCol), int32(endCol)}
	}
	return []int32{int32(startLine - 1), int32(startCol), int32(endLine - 1), int32(endCol)}
}

func scipSymbolName(sym *model.Symbol) string {
	return "local " + sym.ID
}

func scipKind(kind model.SymbolKind) scippb.SymbolInformation_Kind {
	switch kind {
	case model.KindFunction:
		return scippb.SymbolInformation_Function
	case model.KindMethod:
		return scippb.SymbolInformation_Method
	case model.KindConstructor:
		return scippb.SymbolInformation_Constructor
	case model.KindClass:
		return scippb.SymbolInformation_Class
	case model.KindStruct:
		return scippb.SymbolInformation_Struct
	case model.KindInterface:
		return scippb.SymbolInformation_Interface
	case model.KindTrait:
		return scippb.SymbolInformation_Trait
	case model.KindEnum:
		return scippb.SymbolInformation_Enum
	case model.KindEnumMember:
		return scippb.SymbolInformation_EnumMember
	case model.KindNamespace:
		return scippb.SymbolInformation_Namespace
	case model.KindModule:
		return scippb.SymbolInformation_Module
	case model.KindVariable:
		return scippb.SymbolInformation_Variable
	case model.KindConstant:
		return scippb.SymbolInformation_Constant
	case model.KindField:
		return scippb.SymbolInformation_Field
	case model.KindProperty:
		return scippb.SymbolInformation_Property
	case model.KindType:
		return scippb.SymbolInformation_Type
	case model.KindUnion:
		return scippb.SymbolInformation_Union
	default:
		return scippb.SymbolInformation_UnspecifiedKind
	}
}
