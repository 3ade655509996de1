package functions

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/diagnostics"
	"github.com/funvibe/levelc/internal/pipeline"
	"github.com/funvibe/levelc/internal/reader"
)

func build(t *testing.T, source string) ([]string, map[string][]string, *diagnostics.DiagnosticError) {
	t.Helper()
	table, residual, err := Build(reader.Read(source), zap.NewNop())
	if err != nil {
		return nil, nil, err
	}
	var lines []string
	for _, stmt := range residual {
		lines = append(lines, stmt.String())
	}
	bodies := make(map[string][]string)
	for _, name := range table.Names() {
		def, _ := table.Lookup(name)
		body := []string{}
		for _, stmt := range def.Body {
			body = append(body, stmt.String())
		}
		bodies[name] = body
	}
	return lines, bodies, nil
}

func TestBuild_ExtractsBlocks(t *testing.T) {
	source := `a := 1
function [y] := square(x)
  y := mul(x,x)
end
b := square(a)
function [s,d] := sd(p,q)
s := add(p,q)
d := sub(p,q)
end
print b`

	residual, bodies, err := build(t, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"a := 1", "b := square(a)", "print b"}, residual); diff != "" {
		t.Errorf("residual mismatch (-want +got):\n%s", diff)
	}
	want := map[string][]string{
		"square": {"y := mul(x,x)"},
		"sd":     {"s := add(p,q)", "d := sub(p,q)"},
	}
	if diff := cmp.Diff(want, bodies); diff != "" {
		t.Errorf("bodies mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Signature(t *testing.T) {
	table, _, err := Build(reader.Read("function [s, d] := sd(p, q)\nend"), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def, ok := table.Lookup("sd")
	if !ok {
		t.Fatal("sd not defined")
	}
	if diff := cmp.Diff([]string{"s", "d"}, def.Outputs); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p", "q"}, def.Inputs); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
	if len(def.Body) != 0 {
		t.Errorf("expected empty body, got %d statements", len(def.Body))
	}
	if def.Token.Line != 1 {
		t.Errorf("definition line = %d, want 1", def.Token.Line)
	}
}

func TestBuild_NoFunctions(t *testing.T) {
	residual, bodies, err := build(t, "x := f(y)\nz := 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 0 {
		t.Errorf("expected empty table, got %v", bodies)
	}
	if len(residual) != 2 {
		t.Errorf("expected 2 residual statements, got %v", residual)
	}
}

func TestBuild_LastDefinitionWins(t *testing.T) {
	source := `function [y] := f(x)
y := one(x)
end
function [y] := f(x)
y := two(x)
end`

	_, bodies, err := build(t, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"y := two(x)"}, bodies["f"]); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		code    diagnostics.ErrorCode
		line    int
		message string
	}{
		{
			name:    "unterminated",
			source:  "x := 1\nfunction [y] := f(x)\ny := x",
			code:    diagnostics.ErrL001,
			line:    2,
			message: "has no matching 'end'",
		},
		{
			name:    "stray end",
			source:  "x := 1\nend",
			code:    diagnostics.ErrL002,
			line:    2,
			message: "'end' outside of a function block",
		},
		{
			name:    "nested header",
			source:  "function [y] := f(x)\nfunction [z] := g(w)\nend\nend",
			code:    diagnostics.ErrL002,
			line:    2,
			message: "inside the body of f",
		},
		{
			name:    "malformed header",
			source:  "function y := f(x)\nend",
			code:    diagnostics.ErrL002,
			line:    1,
			message: "expected [",
		},
		{
			name:    "duplicate parameter",
			source:  "function [x] := f(x)\nend",
			code:    diagnostics.ErrL002,
			line:    1,
			message: "declared twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := build(t, tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code, tt.code)
			}
			if err.Token.Line != tt.line {
				t.Errorf("line = %d, want %d", err.Token.Line, tt.line)
			}
			if !strings.Contains(err.Message, tt.message) {
				t.Errorf("message %q does not contain %q", err.Message, tt.message)
			}
		})
	}
}

func TestTableProcessor(t *testing.T) {
	ctx := pipeline.NewPipelineContext("function [y] := f(x)\ny := x\nend\nr := f(1)")
	ctx = pipeline.New(&reader.ReaderProcessor{}, &TableProcessor{}).Run(ctx)

	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Err())
	}
	if ctx.Functions.Len() != 1 || !ctx.Functions.Has("f") {
		t.Errorf("unexpected table %v", ctx.Functions.Names())
	}
	if len(ctx.Statements) != 1 || ctx.Statements[0].String() != "r := f(1)" {
		t.Errorf("unexpected residual %v", ctx.Statements)
	}
}

func TestTableProcessor_Error(t *testing.T) {
	ctx := pipeline.NewPipelineContext("function [y] := f(x)")
	ctx.FilePath = "prog.lvl"
	ctx = pipeline.New(&reader.ReaderProcessor{}, &TableProcessor{}).Run(ctx)

	if !ctx.Failed() {
		t.Fatal("expected failure")
	}
	if ctx.Functions != nil {
		t.Error("no table should be published on failure")
	}
	if got := ctx.Err().Error(); !strings.HasPrefix(got, "prog.lvl:1:1: [L001]") {
		t.Errorf("unexpected error %q", got)
	}
}
