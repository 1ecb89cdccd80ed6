package containment

import (
	"testing"

	"symgraph/internal/model"
)

func sym(name string, kind model.SymbolKind, startLine, endLine, startCol, endCol int) model.Symbol {
	return model.Symbol{
		Name:      name,
		Kind:      kind,
		StartLine: startLine,
		EndLine:   endLine,
		StartCol:  startCol,
		EndCol:    endCol,
	}
}

func TestFindContainingSymbol_PriorityOverSpan(t *testing.T) {
	// A variable declared on line 15 inside a function spanning 10-20.
	// Both ranges contain line 15; the function must win even though the
	// variable's span is far smaller.
	candidates := []model.Symbol{
		sym("process", model.KindFunction, 10, 20, 0, 1),
		sym("total", model.KindVariable, 15, 15, 4, 20),
	}

	got := FindContainingSymbol(Position{Line: 15, Col: 8}, candidates, nil)
	if got == nil {
		t.Fatal("no containing symbol found")
	}
	if got.Name != "process" {
		t.Errorf("expected function to contain line 15, got %s (%s)", got.Name, got.Kind)
	}
}

func TestFindContainingSymbol_SmallestSpanTieBreak(t *testing.T) {
	// Two overlapping function-kind symbols: the smaller span wins.
	candidates := []model.Symbol{
		sym("outer", model.KindFunction, 1, 50, 0, 1),
		sym("inner", model.KindFunction, 10, 20, 4, 5),
	}

	got := FindContainingSymbol(Position{Line: 15, Col: 8}, candidates, nil)
	if got == nil || got.Name != "inner" {
		t.Errorf("expected inner function, got %+v", got)
	}

	// Same line span, different column span.
	candidates = []model.Symbol{
		sym("wide", model.KindFunction, 5, 5, 0, 90),
		sym("narrow", model.KindFunction, 5, 5, 10, 40),
	}
	got = FindContainingSymbol(Position{Line: 5, Col: 20}, candidates, nil)
	if got == nil || got.Name != "narrow" {
		t.Errorf("expected narrow function, got %+v", got)
	}
}

func TestFindContainingSymbol_ColumnConstraints(t *testing.T) {
	candidates := []model.Symbol{
		sym("fn", model.KindFunction, 10, 20, 8, 1),
	}

	// First line before the start column: not contained.
	if got := FindContainingSymbol(Position{Line: 10, Col: 2}, candidates, nil); got != nil {
		t.Errorf("position before start col resolved to %s", got.Name)
	}
	// Interior line: column unconstrained.
	if got := FindContainingSymbol(Position{Line: 15, Col: 0}, candidates, nil); got == nil {
		t.Error("interior line not contained")
	}
	// Last line past the end column: not contained.
	if got := FindContainingSymbol(Position{Line: 20, Col: 5}, candidates, nil); got != nil {
		t.Errorf("position past end col resolved to %s", got.Name)
	}
}

func TestFindContainingSymbol_Empty(t *testing.T) {
	if got := FindContainingSymbol(Position{Line: 1, Col: 0}, nil, nil); got != nil {
		t.Errorf("empty candidate set resolved to %+v", got)
	}
	candidates := []model.Symbol{sym("fn", model.KindFunction, 10, 20, 0, 0)}
	if got := FindContainingSymbol(Position{Line: 99, Col: 0}, candidates, nil); got != nil {
		t.Errorf("non-overlapping position resolved to %+v", got)
	}
}

func TestFindContainingSymbol_CustomPriorities(t *testing.T) {
	// A language where nested types matter more than functions can invert
	// the ranking through its own table.
	candidates := []model.Symbol{
		sym("fn", model.KindFunction, 1, 30, 0, 1),
		sym("Cls", model.KindClass, 5, 25, 0, 1),
	}

	inverted := Default()
	inverted[model.KindClass] = 0

	got := FindContainingSymbol(Position{Line: 10, Col: 4}, candidates, inverted)
	if got == nil || got.Name != "Cls" {
		t.Errorf("custom priorities ignored, got %+v", got)
	}
}

func TestPriorities_DefaultRank(t *testing.T) {
	p := Default()
	if p.Rank(model.KindImport) != priorityDefault {
		t.Errorf("unnamed kind should rank %d, got %d", priorityDefault, p.Rank(model.KindImport))
	}
	if p.Rank(model.KindMethod) != priorityCallable {
		t.Error("method should rank as callable")
	}
	if p.Rank(model.KindVariable) != priorityData {
		t.Error("variable should rank as data")
	}
}
