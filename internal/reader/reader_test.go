package reader_test

import (
	"testing"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/pipeline"
	"github.com/funvibe/levelc/internal/reader"
)

func TestRead_DropsBlankLinesAndTrims(t *testing.T) {
	source := "\n  r := square(5)  \r\n\t\n\tfoo bar\n   \n"
	stmts := reader.Read(source)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}

	assign, ok := stmts[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.Assignment", stmts[0])
	}
	if assign.Raw != "r := square(5)" {
		t.Errorf("raw = %q", assign.Raw)
	}
	if assign.GetToken().Line != 2 {
		t.Errorf("line = %d, want 2", assign.GetToken().Line)
	}

	opaque, ok := stmts[1].(*ast.Opaque)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.Opaque", stmts[1])
	}
	if opaque.Text != "foo bar" {
		t.Errorf("text = %q, want %q", opaque.Text, "foo bar")
	}
	if opaque.GetToken().Line != 4 {
		t.Errorf("line = %d, want 4", opaque.GetToken().Line)
	}
}

func TestRead_KeepsOrder(t *testing.T) {
	stmts := reader.Read("a := f(x)\nb := g(a)\nc := h(b)")
	want := []string{"a := f(x)", "b := g(a)", "c := h(b)"}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(stmts))
	}
	for i, stmt := range stmts {
		if stmt.String() != want[i] {
			t.Errorf("statement %d = %q, want %q", i, stmt.String(), want[i])
		}
	}
}

func TestRead_Empty(t *testing.T) {
	if stmts := reader.Read("  \n\t\n"); len(stmts) != 0 {
		t.Errorf("expected no statements, got %d", len(stmts))
	}
}

func TestReaderProcessor_ReservesSourceIdentifiers(t *testing.T) {
	ctx := pipeline.NewPipelineContext("dummy1 := f(dummy2)\n")
	ctx = (&reader.ReaderProcessor{}).Process(ctx)

	gen := ctx.Generator()
	for _, name := range []string{"dummy1", "dummy2", "f"} {
		if !gen.IsReserved(name) {
			t.Errorf("%s not reserved", name)
		}
	}
	if got := gen.Next(); got != "dummy3" {
		t.Errorf("first fresh name = %q, want dummy3", got)
	}
}
