package lang

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/extract"
	"symgraph/internal/model"
)

// markdownExtractor turns headings into section symbols so prose files
// participate in the graph. Everything it emits is documentation
// content, never code.
type markdownExtractor struct{}

func newMarkdownExtractor() *markdownExtractor { return &markdownExtractor{} }

func (m *markdownExtractor) ExtractSymbols(src *extract.Source, tree *sitter.Tree) []model.Symbol {
	symbols := []model.Symbol{}
	// Heading stack by level, for parenting subsections.
	type entry struct {
		level int
		id    string
	}
	stack := []entry{}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "atx_heading" && node.Type() != "setext_heading" {
			return true
		}
		name, level := headingNameAndLevel(node, src)
		if name == "" {
			return false
		}
		sym := newSymbol(src, node, name, model.KindSection)
		sym.ContentType = model.ContentTypeDocumentation
		sym.Metadata = map[string]string{"level": strconv.Itoa(level)}
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			sym.ParentID = stack[len(stack)-1].id
		}
		stack = append(stack, entry{level: level, id: sym.ID})
		symbols = append(symbols, sym)
		return false
	})

	return dedupSymbols(symbols)
}

func (m *markdownExtractor) ExtractRelationships(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship {
	return []model.Relationship{}
}

func (m *markdownExtractor) ExtractIdentifiers(src *extract.Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier {
	return []model.Identifier{}
}

func (m *markdownExtractor) InferTypes(symbols []model.Symbol) map[string]string {
	return map[string]string{}
}

// headingNameAndLevel reads a heading's text and depth. ATX level is
// the marker length; setext level one or two by underline style.
func headingNameAndLevel(node *sitter.Node, src *extract.Source) (string, int) {
	text := src.Text(node)
	if node.Type() == "atx_heading" {
		level := 0
		for level < len(text) && text[level] == '#' {
			level++
		}
		name := strings.TrimSpace(strings.TrimLeft(text, "# "))
		name = strings.TrimRight(name, "# \n")
		if level == 0 {
			level = 1
		}
		return name, level
	}
	lines := strings.SplitN(text, "\n", 2)
	name := strings.TrimSpace(lines[0])
	level := 1
	if len(lines) > 1 && strings.HasPrefix(strings.TrimSpace(lines[1]), "-") {
		level = 2
	}
	return name, level
}
