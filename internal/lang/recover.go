package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/identity"
	"symgraph/internal/model"
	"symgraph/internal/position"
)

// recoveryPattern matches a definition keyword at the start of a line
// inside a parser ERROR region. Source under active editing is
// frequently transiently invalid, so error regions get a best-effort
// text scan instead of being skipped outright.
type recoveryPattern struct {
	prefix string
	kind   model.SymbolKind
}

var recoveryPatterns = map[string][]recoveryPattern{
	"go": {
		{"func ", model.KindFunction},
		{"type ", model.KindType},
	},
	"python": {
		{"def ", model.KindFunction},
		{"class ", model.KindClass},
	},
	"javascript": {
		{"function ", model.KindFunction},
		{"class ", model.KindClass},
	},
	"typescript": {
		{"function ", model.KindFunction},
		{"class ", model.KindClass},
		{"interface ", model.KindInterface},
	},
	"rust": {
		{"fn ", model.KindFunction},
		{"struct ", model.KindStruct},
		{"trait ", model.KindTrait},
	},
	"java": {
		{"class ", model.KindClass},
		{"interface ", model.KindInterface},
	},
	"ruby": {
		{"def ", model.KindFunction},
		{"class ", model.KindClass},
	},
	"bash": {
		{"function ", model.KindFunction},
	},
}

// recoverSymbols scans an ERROR node's text line by line for definition
// keywords and emits degraded symbols for whatever it can identify.
// Symbols found this way dedup naturally against tree-derived ones
// through id collision when they share a name and origin position.
func recoverSymbols(src *extract.Source, errNode *sitter.Node) []model.Symbol {
	patterns := recoveryPatterns[baseLanguage(src.Language)]
	if len(patterns) == 0 {
		return nil
	}

	text := src.Text(errNode)
	if text == position.UnknownText {
		return nil
	}

	var symbols []model.Symbol
	startLine := int(errNode.StartPoint().Row) + 1
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, p := range patterns {
			if !strings.HasPrefix(trimmed, p.prefix) {
				continue
			}
			name := recoveredName(strings.TrimPrefix(trimmed, p.prefix))
			if name == "" {
				continue
			}
			col := len(line) - len(trimmed)
			symbols = append(symbols, model.Symbol{
				ID:        identity.GenerateID(name, startLine+i, col),
				Name:      name,
				Kind:      p.kind,
				Language:  src.Language,
				FilePath:  src.FilePath,
				StartLine: startLine + i,
				EndLine:   startLine + i,
				StartCol:  col,
				EndCol:    col + len(trimmed),
				Signature: trimmed,
				Metadata:  map[string]string{"recovered": "true"},
			})
			break
		}
	}
	return symbols
}

// recoveredName takes the identifier at the head of the remaining text.
func recoveredName(rest string) string {
	end := 0
	for end < len(rest) {
		c := rest[end]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || end > 0 && c >= '0' && c <= '9' {
			end++
			continue
		}
		break
	}
	return rest[:end]
}

// baseLanguage folds dialects onto the language whose recovery patterns
// they share.
func baseLanguage(language string) string {
	switch language {
	case "tsx":
		return "typescript"
	default:
		return language
	}
}
