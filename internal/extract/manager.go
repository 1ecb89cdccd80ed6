package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/errors"
	"symgraph/internal/model"
	"symgraph/internal/slogutil"
)

// Manager resolves a file to its language, parses, and routes each
// operation to the registered plugin. It holds no mutable state, so one
// Manager is safe to use from many goroutines, one file per call.
// Callers parallelize across files, never within one file's pipeline:
// relationship and identifier extraction must observe the finished
// symbol list.
type Manager struct {
	registry     *Registry
	logger       *slog.Logger
	contextLines int
}

// NewManager creates a manager over the given registry. A nil logger
// discards.
func NewManager(registry *Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Manager{
		registry:     registry,
		logger:       logger,
		contextLines: -1, // position package default
	}
}

// SetContextLines overrides the context window captured around each
// symbol. A negative value restores the default.
func (m *Manager) SetContextLines(n int) {
	m.contextLines = n
}

// FileGraph is the full extraction result for one file.
type FileGraph struct {
	FilePath      string               `json:"filePath"`
	Language      string               `json:"language"`
	Symbols       []model.Symbol       `json:"symbols"`
	Identifiers   []model.Identifier   `json:"identifiers"`
	Relationships []model.Relationship `json:"relationships"`
	Types         map[string]string    `json:"types,omitempty"`
}

// resolve maps the file extension to a registration. Failure is terminal
// for the file, never for a batch.
func (m *Manager) resolve(filePath string) (*Registration, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return nil, errors.New(errors.UnsupportedLanguage, "file has no extension", filePath, nil)
	}
	reg, ok := m.registry.ByExtension(ext)
	if !ok {
		return nil, errors.New(errors.UnsupportedLanguage,
			fmt.Sprintf("no grammar registered for %s", ext), filePath, nil)
	}
	return reg, nil
}

// parse produces a tree for one call. Each public operation re-parses:
// symbols, identifiers, and relationships are independent entry points,
// and trading CPU for statelessness keeps the manager thread-safe.
// The caller owns the returned tree and must Close it.
func (m *Manager) parse(ctx context.Context, reg *Registration, filePath string, content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(reg.Grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.New(errors.ParseFailed, "parser returned no tree", filePath, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, errors.New(errors.ParseFailed, "parser returned no tree", filePath, nil)
	}
	return tree, nil
}

func (m *Manager) source(reg *Registration, filePath string, content []byte) *Source {
	src := NewSource(filePath, reg.Language, content, reg.Priorities)
	if m.contextLines >= 0 {
		src.ContextLines = m.contextLines
	}
	return src
}

// ExtractSymbols produces every definition in the file.
func (m *Manager) ExtractSymbols(ctx context.Context, filePath string, content []byte) ([]model.Symbol, error) {
	if isMultiDocument(filePath) {
		return m.extractMultiDocument(ctx, filePath, content)
	}

	reg, err := m.resolve(filePath)
	if err != nil {
		return nil, err
	}
	tree, err := m.parse(ctx, reg, filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return reg.Extractor.ExtractSymbols(m.source(reg, filePath, content), tree), nil
}

// ExtractIdentifiers produces every usage site, each with its lexical
// container resolved and its target deliberately left empty.
func (m *Manager) ExtractIdentifiers(ctx context.Context, filePath string, content []byte, symbols []model.Symbol) ([]model.Identifier, error) {
	if isMultiDocument(filePath) {
		return []model.Identifier{}, nil
	}

	reg, err := m.resolve(filePath)
	if err != nil {
		return nil, err
	}
	tree, err := m.parse(ctx, reg, filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return reg.Extractor.ExtractIdentifiers(m.source(reg, filePath, content), tree, symbols), nil
}

// ExtractRelationships produces the structural edges of the file, given
// the already-built symbol set.
func (m *Manager) ExtractRelationships(ctx context.Context, filePath string, content []byte, symbols []model.Symbol) ([]model.Relationship, error) {
	if isMultiDocument(filePath) {
		return []model.Relationship{}, nil
	}

	reg, err := m.resolve(filePath)
	if err != nil {
		return nil, err
	}
	tree, err := m.parse(ctx, reg, filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return reg.Extractor.ExtractRelationships(m.source(reg, filePath, content), tree, symbols), nil
}

// InferTypes runs the pure type-inference pass over already-built
// symbols. The language is resolved from the symbols themselves.
func (m *Manager) InferTypes(symbols []model.Symbol) (map[string]string, error) {
	if len(symbols) == 0 {
		return map[string]string{}, nil
	}
	reg, ok := m.registry.ByLanguage(symbols[0].Language)
	if !ok {
		return map[string]string{}, nil
	}
	return reg.Extractor.InferTypes(symbols), nil
}

// ExtractFile runs the whole pipeline for one file in stage order:
// symbols first, then relationships and identifiers over the finished
// symbol list, then type inference. One parse serves all stages.
func (m *Manager) ExtractFile(ctx context.Context, filePath string, content []byte) (*FileGraph, error) {
	if isMultiDocument(filePath) {
		symbols, err := m.extractMultiDocument(ctx, filePath, content)
		if err != nil {
			return nil, err
		}
		return &FileGraph{
			FilePath:      filePath,
			Language:      containerRecordLanguage(filePath),
			Symbols:       symbols,
			Identifiers:   []model.Identifier{},
			Relationships: []model.Relationship{},
		}, nil
	}

	reg, err := m.resolve(filePath)
	if err != nil {
		return nil, err
	}
	tree, err := m.parse(ctx, reg, filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	src := m.source(reg, filePath, content)
	symbols := reg.Extractor.ExtractSymbols(src, tree)
	relationships := reg.Extractor.ExtractRelationships(src, tree, symbols)
	identifiers := reg.Extractor.ExtractIdentifiers(src, tree, symbols)
	types := reg.Extractor.InferTypes(symbols)

	return &FileGraph{
		FilePath:      filePath,
		Language:      reg.Language,
		Symbols:       symbols,
		Identifiers:   identifiers,
		Relationships: relationships,
		Types:         types,
	}, nil
}

// ExtractDirectory walks a tree and extracts every supported file.
// Batches degrade gracefully: a file that fails yields zero records and
// a log line, never an aborted run.
func (m *Manager) ExtractDirectory(ctx context.Context, root string, filter func(string) bool) ([]*FileGraph, error) {
	var results []*FileGraph

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			switch name {
			case "node_modules", "vendor", "__pycache__", "target", "dist":
				return filepath.SkipDir
			}
			return nil
		}
		if filter != nil && !filter(path) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := m.registry.ByExtension(ext); !ok && !isMultiDocument(path) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			m.logger.Warn("skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		graph, exErr := m.ExtractFile(ctx, path, content)
		if exErr != nil {
			m.logger.Warn("extraction failed for file", "path", path, "error", exErr)
			return nil
		}
		results = append(results, graph)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
