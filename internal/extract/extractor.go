// Package extract is the dispatch core of the engine: the plugin
// contract every language extractor implements, the registry that maps
// language tags to plugins, and the manager that routes a file through
// parse and extraction.
package extract

import (
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"symgraph/internal/containment"
	"symgraph/internal/model"
)

// LanguageExtractor is the four-operation contract each language plugin
// implements against a parsed tree.
//
// ExtractSymbols walks the tree once and produces every definition.
// ExtractRelationships and ExtractIdentifiers receive the already-built
// symbol list and must not mutate it. InferTypes is a pure function over
// already-built signatures and metadata; it never touches a tree.
//
// No operation may abort the file because one construct was
// unrecognized: a node that does not match any known shape yields
// nothing and traversal continues.
type LanguageExtractor interface {
	ExtractSymbols(src *Source, tree *sitter.Tree) []model.Symbol
	ExtractRelationships(src *Source, tree *sitter.Tree, symbols []model.Symbol) []model.Relationship
	ExtractIdentifiers(src *Source, tree *sitter.Tree, symbols []model.Symbol) []model.Identifier
	InferTypes(symbols []model.Symbol) map[string]string
}

// Registration binds a language tag to its grammar, file extensions, and
// plugin. Priorities optionally overrides the containment ranking for
// languages whose scoping differs from the default heuristic.
type Registration struct {
	Language   string
	Extensions []string
	Grammar    *sitter.Language
	Extractor  LanguageExtractor
	Priorities containment.Priorities
}

// Registry maps language tags and file extensions to registrations.
// Adding a language is a Register call, never an edit to dispatch
// control flow.
type Registry struct {
	mu          sync.RWMutex
	byLanguage  map[string]*Registration
	byExtension map[string]*Registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]*Registration),
		byExtension: make(map[string]*Registration),
	}
}

// Register adds a language. Later registrations win extension conflicts,
// so callers can shadow a built-in mapping.
func (r *Registry) Register(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := reg
	r.byLanguage[reg.Language] = &stored
	for _, ext := range reg.Extensions {
		r.byExtension[ext] = &stored
	}
}

// ByLanguage returns the registration for a language tag.
func (r *Registry) ByLanguage(language string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byLanguage[language]
	return reg, ok
}

// ByExtension returns the registration for a file extension (including
// the leading dot, lower-cased).
func (r *Registry) ByExtension(ext string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byExtension[ext]
	return reg, ok
}

// SetPriorities replaces the containment ranking for a registered
// language. Returns false when the language is unknown.
func (r *Registry) SetPriorities(language string, p containment.Priorities) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byLanguage[language]
	if !ok {
		return false
	}
	reg.Priorities = p
	return true
}

// Languages returns all registered language tags, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.byLanguage))
	for l := range r.byLanguage {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for e := range r.byExtension {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}
