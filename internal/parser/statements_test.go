package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/levelc/internal/ast"
)

func TestParseStatement_Assignments(t *testing.T) {
	tests := []struct {
		input     string
		outputs   []string
		bracketed bool
		expr      string
		activator string
	}{
		{"r := square(5)", []string{"r"}, false, "square(5)", ""},
		{"[a,b] := g(y)", []string{"a", "b"}, true, "g(y)", ""},
		{"[ a , b ] := g(y)", []string{"a", "b"}, true, "g(y)", ""},
		{"[a] := g(y)", []string{"a"}, true, "g(y)", ""},
		{"z := ext(r) $ go", []string{"z"}, false, "ext(r)", "go"},
		{"z := f(a $ b) $ on", []string{"z"}, false, "f(a $ b)", "on"},
		{"x := 1 + 2", []string{"x"}, false, "1 + 2", ""},
		{"x:=y", []string{"x"}, false, "y", ""},
	}

	for _, tt := range tests {
		stmt := ParseStatement(tt.input, 3)
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			t.Fatalf("%q: expected *ast.Assignment, got %T", tt.input, stmt)
		}
		if diff := cmp.Diff(tt.outputs, assign.Outputs); diff != "" {
			t.Errorf("%q: outputs mismatch (-want +got):\n%s", tt.input, diff)
		}
		if assign.Bracketed != tt.bracketed {
			t.Errorf("%q: bracketed = %v, want %v", tt.input, assign.Bracketed, tt.bracketed)
		}
		if assign.Expression != tt.expr {
			t.Errorf("%q: expression = %q, want %q", tt.input, assign.Expression, tt.expr)
		}
		if assign.Activator != tt.activator {
			t.Errorf("%q: activator = %q, want %q", tt.input, assign.Activator, tt.activator)
		}
		if assign.String() != tt.input {
			t.Errorf("%q: String() = %q, want the raw line", tt.input, assign.String())
		}
		if assign.Token.Line != 3 || assign.Token.Column != 1 {
			t.Errorf("%q: position = %d:%d, want 3:1", tt.input, assign.Token.Line, assign.Token.Column)
		}
	}
}

func TestParseStatement_Opaque(t *testing.T) {
	inputs := []string{
		"print x",
		"x = 5",
		"x :=",
		"[a, := f(x)",
		"5 := x",
		"x := f(y) $",
		"x := f(y) $ two words",
		"function [y] := f(x)",
		"end",
	}

	for _, input := range inputs {
		stmt := ParseStatement(input, 1)
		op, ok := stmt.(*ast.Opaque)
		if !ok {
			t.Errorf("%q: expected *ast.Opaque, got %T", input, stmt)
			continue
		}
		if op.String() != input {
			t.Errorf("%q: String() = %q", input, op.String())
		}
	}
}

func TestAssignment_Canonical(t *testing.T) {
	stmt := ParseStatement("[ a ]:=  f(x)   $   on", 1).(*ast.Assignment)
	if got := stmt.Canonical(); got != "[a] := f(x) $ on" {
		t.Errorf("Canonical() = %q", got)
	}
	rebuilt := stmt.Rebuild("g(x)")
	if rebuilt.Raw != "" {
		t.Errorf("Rebuild kept raw text %q", rebuilt.Raw)
	}
	if got := rebuilt.String(); got != "[a] := g(x) $ on" {
		t.Errorf("rebuilt String() = %q", got)
	}
}

func TestIsFunctionHeaderAndEnd(t *testing.T) {
	if !IsFunctionHeader("function [y] := f(x)") {
		t.Error("expected function header")
	}
	if !IsFunctionHeader("function garbage") {
		t.Error("a malformed header still starts a block")
	}
	if IsFunctionHeader("functions := 1") {
		t.Error("'functions' is not the keyword")
	}
	if !IsEnd("end") {
		t.Error("expected end")
	}
	if IsEnd("end x") || IsEnd("ending := 1") {
		t.Error("only a bare 'end' terminates a block")
	}
}

func TestParseFunctionHeader(t *testing.T) {
	tests := []struct {
		input string
		want  ast.FunctionSignature
	}{
		{"function [y] := square(x)", ast.FunctionSignature{Name: "square", Outputs: []string{"y"}, Inputs: []string{"x"}}},
		{"function [s, d] := sd(a, b)", ast.FunctionSignature{Name: "sd", Outputs: []string{"s", "d"}, Inputs: []string{"a", "b"}}},
		{"function [] := noop()", ast.FunctionSignature{Name: "noop", Outputs: []string{}, Inputs: []string{}}},
	}

	for _, tt := range tests {
		sig, err := ParseFunctionHeader(tt.input, 1)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if diff := cmp.Diff(tt.want, *sig); diff != "" {
			t.Errorf("%q: signature mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseFunctionHeader_Errors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"function y := f(x)", "expected ["},
		{"function [y] = f(x)", "expected :="},
		{"function [y] := (x)", "expected IDENT"},
		{"function [y] := f x", "expected ("},
		{"function [y] := f(x", "got end of line"},
		{"function [y] := f(x) extra", "after parameter list"},
		{"function [y,] := f(x)", "expected IDENT"},
		{"function [x] := f(x)", "declared twice"},
		{"function [y] := f(a, a)", "declared twice"},
	}

	for _, tt := range tests {
		_, err := ParseFunctionHeader(tt.input, 1)
		if err == nil {
			t.Errorf("%q: expected error", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.message) {
			t.Errorf("%q: error %q does not contain %q", tt.input, err.Error(), tt.message)
		}
	}
}
