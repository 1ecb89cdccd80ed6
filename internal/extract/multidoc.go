package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"symgraph/internal/errors"
	"symgraph/internal/identity"
	"symgraph/internal/model"
)

// containerFormats maps multi-document container extensions to the
// language whose grammar parses one record. Each line of such a file is
// an independently parseable document; the JSON lines formats reuse the
// YAML grammar, JSON being a YAML subset. The table is the extension
// point for further line-delimited formats.
var containerFormats = map[string]string{
	".jsonl":  "yaml",
	".ndjson": "yaml",
}

func isMultiDocument(filePath string) bool {
	_, ok := containerFormats[strings.ToLower(filepath.Ext(filePath))]
	return ok
}

func containerRecordLanguage(filePath string) string {
	return containerFormats[strings.ToLower(filepath.Ext(filePath))]
}

// extractMultiDocument splits a container file into non-blank lines,
// runs the normal single-document symbol pipeline on each line, and
// shifts the resulting line numbers by the line's 0-based index in the
// container. The single-document extractor is reused unmodified, at the
// cost of re-instantiating the parser per line.
func (m *Manager) extractMultiDocument(ctx context.Context, filePath string, content []byte) ([]model.Symbol, error) {
	recordLang := containerRecordLanguage(filePath)
	reg, ok := m.registry.ByLanguage(recordLang)
	if !ok {
		return nil, errors.New(errors.UnsupportedLanguage,
			fmt.Sprintf("record language %s not registered", recordLang), filePath, nil)
	}

	symbols := []model.Symbol{}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record := []byte(line)
		tree, err := m.parse(ctx, reg, filePath, record)
		if err != nil {
			// One bad record never fails the container.
			m.logger.Debug("skipping unparseable record", "path", filePath, "line", i+1)
			continue
		}

		src := m.source(reg, filePath, record)
		for _, sym := range reg.Extractor.ExtractSymbols(src, tree) {
			sym.StartLine += i
			sym.EndLine += i
			// The id invariant holds against the rewritten position.
			sym.ID = identity.GenerateID(sym.Name, sym.StartLine, sym.StartCol)
			symbols = append(symbols, sym)
		}
		tree.Close()
	}
	return symbols, nil
}
