package inliner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/diagnostics"
	"github.com/funvibe/levelc/internal/dummy"
	"github.com/funvibe/levelc/internal/parser"
	"github.com/funvibe/levelc/internal/pipeline"
	"github.com/funvibe/levelc/internal/token"
)

// InlinerProcessor replaces call sites of table functions with their bodies.
type InlinerProcessor struct{}

func (ip *InlinerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.Functions == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrL000, token.Token{}, "inliner: function table was not built"))
		return ctx
	}

	in := New(ctx.Functions, ctx.Generator(), ctx.Log())
	statements, err := in.Inline(ctx.Statements)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}

	ctx.Log().Debug("inlined",
		zap.Int("call_sites", in.expanded),
		zap.Int("statements", len(statements)),
	)
	ctx.Statements = statements
	return ctx
}

// Inliner expands call sites. An assignment qualifies when its whole
// expression is one call to a function in the table.
type Inliner struct {
	table *ast.FunctionTable
	gen   *dummy.Generator
	log   *zap.Logger

	// stack holds the functions currently being expanded.
	stack    []string
	expanded int
}

func New(table *ast.FunctionTable, gen *dummy.Generator, log *zap.Logger) *Inliner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inliner{table: table, gen: gen, log: log}
}

// Inline returns statements with every qualifying call site expanded.
// Expanded bodies are inlined again, so calls between table functions
// disappear too. Other statements pass through unchanged.
func (in *Inliner) Inline(statements []ast.Statement) ([]ast.Statement, *diagnostics.DiagnosticError) {
	out := make([]ast.Statement, 0, len(statements))
	for _, stmt := range statements {
		expanded, err := in.inlineStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (in *Inliner) inlineStatement(stmt ast.Statement) ([]ast.Statement, *diagnostics.DiagnosticError) {
	site, ok := stmt.(*ast.Assignment)
	if !ok {
		return []ast.Statement{stmt}, nil
	}
	call, ok := parser.ParseCall(site.Expression)
	if !ok {
		return []ast.Statement{stmt}, nil
	}
	def, ok := in.table.Lookup(call.Function)
	if !ok {
		in.log.Debug("external function left in place", zap.String("name", call.Function))
		return []ast.Statement{stmt}, nil
	}

	for _, active := range in.stack {
		if active == def.Name {
			return nil, diagnostics.NewError(diagnostics.ErrL004, site.Token, def.Name, site.String())
		}
	}
	if len(call.Arguments) != len(def.Inputs) {
		return nil, diagnostics.NewError(diagnostics.ErrL003, site.Token, def.Name,
			fmt.Sprintf("%d arguments for %d inputs", len(call.Arguments), len(def.Inputs)), site.String())
	}
	if len(site.Outputs) != len(def.Outputs) {
		return nil, diagnostics.NewError(diagnostics.ErrL003, site.Token, def.Name,
			fmt.Sprintf("%d outputs assigned from %d", len(site.Outputs), len(def.Outputs)), site.String())
	}

	body := in.expand(def, call, site)
	in.expanded++

	in.stack = append(in.stack, def.Name)
	defer func() { in.stack = in.stack[:len(in.stack)-1] }()
	return in.Inline(body)
}

// expand returns a renamed copy of the body of def for one call site.
func (in *Inliner) expand(def *ast.FunctionDefinition, call *ast.CallExpression, site *ast.Assignment) []ast.Statement {
	b := newBindings(def, call.Arguments, site.Outputs)

	for _, stmt := range def.Body {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			continue
		}
		for _, out := range assign.Outputs {
			if b.bound(out) {
				continue
			}
			fresh := in.gen.Next()
			b.bind(out, fresh)
			in.log.Debug("local renamed",
				zap.String("function", def.Name),
				zap.String("local", out),
				zap.String("name", fresh),
			)
		}
	}

	body := make([]ast.Statement, 0, len(def.Body))
	for _, stmt := range def.Body {
		switch s := stmt.(type) {
		case *ast.Assignment:
			outputs := make([]string, len(s.Outputs))
			for i, out := range s.Outputs {
				outputs[i] = b.apply(out)
			}
			activator := site.Activator
			if s.Activator != "" {
				activator = b.apply(s.Activator)
			}
			body = append(body, &ast.Assignment{
				Token:      site.Token,
				Outputs:    outputs,
				Bracketed:  s.Bracketed,
				Expression: b.apply(s.Expression),
				Activator:  activator,
			})
		default:
			body = append(body, &ast.Opaque{Token: site.Token, Text: b.apply(stmt.String())})
		}
	}
	return body
}
