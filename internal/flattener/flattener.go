package flattener

import (
	"sort"

	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/config"
	"github.com/funvibe/levelc/internal/diagnostics"
	"github.com/funvibe/levelc/internal/dummy"
	"github.com/funvibe/levelc/internal/parser"
	"github.com/funvibe/levelc/internal/pipeline"
	"github.com/funvibe/levelc/internal/token"
)

// FlattenerProcessor un-nests applications of table functions into
// temporary assignments.
type FlattenerProcessor struct{}

func (fp *FlattenerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.Functions == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrL000, token.Token{}, "flattener: function table was not built"))
		return ctx
	}

	f := New(ctx.Functions, ctx.Generator(), ctx.Log())
	f.Passes = ctx.Settings().Flatten.Passes
	ctx.Statements = f.Flatten(ctx.Statements)

	ctx.Log().Debug("flattened",
		zap.Int("temporaries", f.extracted),
		zap.Int("statements", len(ctx.Statements)),
	)
	return ctx
}

// Flattener extracts innermost applications into temporaries.
type Flattener struct {
	// Passes is how many times a rewritten expression is scanned again.
	// With one pass, applications that only become innermost after the
	// first round of extraction stay nested.
	Passes int

	table     *ast.FunctionTable
	gen       *dummy.Generator
	log       *zap.Logger
	extracted int
}

func New(table *ast.FunctionTable, gen *dummy.Generator, log *zap.Logger) *Flattener {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flattener{Passes: config.DefaultPasses, table: table, gen: gen, log: log}
}

// Flatten returns statements where each assignment is preceded by the
// temporaries extracted from its expression. Statements without reducible
// applications are returned as they are.
func (f *Flattener) Flatten(statements []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(statements))
	for _, stmt := range statements {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			out = append(out, stmt)
			continue
		}
		out = append(out, f.flattenAssignment(assign)...)
	}
	return out
}

func (f *Flattener) flattenAssignment(assign *ast.Assignment) []ast.Statement {
	expr := assign.Expression
	var temps []ast.Statement

	passes := f.Passes
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		calls := f.reducible(expr)
		if len(calls) == 0 {
			break
		}

		// Rightmost first: replacing a span never moves the spans to its left.
		sort.SliceStable(calls, func(i, j int) bool {
			return calls[i].Offset > calls[j].Offset
		})

		for _, call := range calls {
			name := f.gen.Next()
			application := expr[call.Offset:call.End()]
			temps = append(temps, &ast.Assignment{
				Token:      assign.Token,
				Outputs:    []string{name},
				Expression: application,
			})
			expr = expr[:call.Offset] + name + expr[call.End():]
			f.extracted++
			f.log.Debug("temporary extracted",
				zap.String("name", name),
				zap.String("application", application),
				zap.Int("line", assign.Token.Line),
			)
		}
	}

	if len(temps) == 0 {
		return []ast.Statement{assign}
	}
	return append(temps, assign.Rebuild(expr))
}

// reducible returns the applications of table functions in expr whose
// arguments contain no parentheses. An application that is the whole
// expression is already flat and is not returned.
func (f *Flattener) reducible(expr string) []*ast.CallExpression {
	var calls []*ast.CallExpression
	for _, call := range parser.ParseCalls(expr) {
		if call.Nested || !f.table.Has(call.Function) {
			continue
		}
		if call.Offset == 0 && call.Length == len(expr) {
			continue
		}
		calls = append(calls, call)
	}
	return calls
}
