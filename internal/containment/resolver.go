// Package containment assigns positions to their innermost enclosing
// symbol. Nested scopes must resolve to the innermost meaningful scope
// for call-graph purposes: a local variable should never out-contain the
// function that holds it, so candidate selection weighs symbol kind
// before span size.
package containment

import (
	"sort"

	"symgraph/internal/model"
)

// Priority ranks; lower is better. Callables beat types beat namespaces;
// data symbols lose to everything.
const (
	priorityCallable  = 1
	priorityType      = 2
	priorityNamespace = 3
	priorityDefault   = 5
	priorityData      = 10
)

// lineSpanWeight makes line span dominate column span when comparing the
// sizes of two candidates.
const lineSpanWeight = 10000

// Priorities maps symbol kinds to containment ranks. The table is a
// heuristic tuned per observed corpora, not a semantic law; languages may
// install their own via Registry overrides.
type Priorities map[model.SymbolKind]int

// Default returns the standard priority table.
func Default() Priorities {
	return Priorities{
		model.KindFunction:    priorityCallable,
		model.KindMethod:      priorityCallable,
		model.KindConstructor: priorityCallable,
		model.KindDestructor:  priorityCallable,
		model.KindOperator:    priorityCallable,

		model.KindClass:     priorityType,
		model.KindStruct:    priorityType,
		model.KindInterface: priorityType,
		model.KindTrait:     priorityType,
		model.KindUnion:     priorityType,
		model.KindEnum:      priorityType,

		model.KindNamespace: priorityNamespace,
		model.KindModule:    priorityNamespace,

		model.KindVariable: priorityData,
		model.KindConstant: priorityData,
		model.KindField:    priorityData,
		model.KindProperty: priorityData,
	}
}

// Rank returns the priority for a kind, falling back to the default
// mid-rank for kinds the table does not name.
func (p Priorities) Rank(kind model.SymbolKind) int {
	if r, ok := p[kind]; ok {
		return r
	}
	return priorityDefault
}

// Position is a query point in the engine's convention.
type Position struct {
	Line int // 1-based
	Col  int // 0-based
}

// FindContainingSymbol returns the innermost symbol enclosing pos, or nil
// if no candidate's span contains it. Selection is a two-key sort: kind
// priority first, then smallest span.
func FindContainingSymbol(pos Position, candidates []model.Symbol, priorities Priorities) *model.Symbol {
	if priorities == nil {
		priorities = Default()
	}

	var matched []int
	for i := range candidates {
		if candidates[i].Span().Contains(pos.Line, pos.Col) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sort.Slice(matched, func(a, b int) bool {
		sa, sb := &candidates[matched[a]], &candidates[matched[b]]
		ra, rb := priorities.Rank(sa.Kind), priorities.Rank(sb.Kind)
		if ra != rb {
			return ra < rb
		}
		return spanSize(sa) < spanSize(sb)
	})
	return &candidates[matched[0]]
}

func spanSize(s *model.Symbol) int {
	return (s.EndLine-s.StartLine)*lineSpanWeight + (s.EndCol - s.StartCol)
}
