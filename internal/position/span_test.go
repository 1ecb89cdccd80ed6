package position

import (
	"strings"
	"testing"

	"symgraph/internal/model"
)

func TestSafeSlice_Bounds(t *testing.T) {
	src := []byte("hello world")

	if s, ok := SafeSlice(src, 0, 5); !ok || s != "hello" {
		t.Errorf("SafeSlice(0,5) = %q, %v", s, ok)
	}
	if _, ok := SafeSlice(src, -1, 5); ok {
		t.Error("negative start accepted")
	}
	if _, ok := SafeSlice(src, 5, 3); ok {
		t.Error("inverted range accepted")
	}
	if _, ok := SafeSlice(src, 0, len(src)+1); ok {
		t.Error("out-of-bounds end accepted")
	}
}

func TestSafeSlice_MultibyteBoundary(t *testing.T) {
	src := []byte("héllo") // é is two bytes: src[1], src[2]

	if _, ok := SafeSlice(src, 2, 4); ok {
		t.Error("slice starting mid-rune accepted")
	}
	if _, ok := SafeSlice(src, 0, 2); ok {
		t.Error("slice ending mid-rune accepted")
	}
	if s, ok := SafeSlice(src, 0, 3); !ok || s != "hé" {
		t.Errorf("valid multibyte slice = %q, %v", s, ok)
	}
}

func TestContext_Window(t *testing.T) {
	var lines []string
	for i := 1; i <= 20; i++ {
		lines = append(lines, "line")
	}

	span := model.Span{StartLine: 10, EndLine: 10}
	got := Context(lines, span, 2)
	if n := len(strings.Split(got, "\n")); n != 5 {
		t.Errorf("expected 5-line window, got %d lines", n)
	}

	// Clamped at file start.
	span = model.Span{StartLine: 1, EndLine: 1}
	got = Context(lines, span, 3)
	if n := len(strings.Split(got, "\n")); n != 4 {
		t.Errorf("expected 4-line clamped window, got %d lines", n)
	}

	// Out-of-range span yields nothing rather than panicking.
	span = model.Span{StartLine: 100, EndLine: 100}
	if got = Context(lines, span, 3); got != "" {
		t.Errorf("expected empty context for out-of-range span, got %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("func Foo(a int) error {\n\treturn nil\n}", 200); got != "func Foo(a int) error" {
		t.Errorf("FirstLine = %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := FirstLine(long, 200); len(got) > 204 {
		t.Errorf("long single line not truncated: %d bytes", len(got))
	}
}

func TestSpan_Contains(t *testing.T) {
	multi := model.Span{StartLine: 10, EndLine: 20, StartCol: 4, EndCol: 1}

	cases := []struct {
		line, col int
		want      bool
	}{
		{9, 0, false},  // before
		{21, 0, false}, // after
		{10, 3, false}, // first line, before start col
		{10, 4, true},  // first line, at start col
		{15, 0, true},  // interior line, column unconstrained
		{15, 999, true},
		{20, 1, true},  // last line, at end col
		{20, 2, false}, // last line, past end col
	}
	for _, c := range cases {
		if got := multi.Contains(c.line, c.col); got != c.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", c.line, c.col, got, c.want)
		}
	}

	single := model.Span{StartLine: 5, EndLine: 5, StartCol: 2, EndCol: 8}
	if single.Contains(5, 1) || !single.Contains(5, 2) || !single.Contains(5, 8) || single.Contains(5, 9) {
		t.Error("single-line column bounds wrong")
	}
}
