package functions

import (
	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/diagnostics"
	"github.com/funvibe/levelc/internal/parser"
	"github.com/funvibe/levelc/internal/pipeline"
)

// TableProcessor moves `function ... end` blocks out of the statement
// stream into ctx.Functions.
type TableProcessor struct{}

func (tp *TableProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}

	log := ctx.Log()
	table, residual, err := Build(ctx.Statements, log)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}

	for _, name := range table.Names() {
		def, _ := table.Lookup(name)
		log.Debug("function defined",
			zap.String("name", name),
			zap.Strings("outputs", def.Outputs),
			zap.Strings("inputs", def.Inputs),
			zap.Int("body", len(def.Body)),
		)
	}

	ctx.Functions = table
	ctx.Statements = residual
	return ctx
}

// Build scans statements for function blocks. It returns the table and the
// statements outside any block, in order. A later definition of a name
// replaces the earlier one.
func Build(statements []ast.Statement, log *zap.Logger) (*ast.FunctionTable, []ast.Statement, *diagnostics.DiagnosticError) {
	table := ast.NewFunctionTable()
	var residual []ast.Statement

	var current *ast.FunctionDefinition
	var header string

	for _, stmt := range statements {
		text := stmt.String()
		tok := stmt.GetToken()

		switch {
		case parser.IsFunctionHeader(text):
			if current != nil {
				return nil, nil, diagnostics.NewError(diagnostics.ErrL002, tok,
					"function header inside the body of "+current.Name, text)
			}
			sig, err := parser.ParseFunctionHeader(text, tok.Line)
			if err != nil {
				return nil, nil, diagnostics.NewError(diagnostics.ErrL002, tok, err.Error(), text)
			}
			current = &ast.FunctionDefinition{FunctionSignature: *sig, Token: tok}
			header = text

		case parser.IsEnd(text):
			if current == nil {
				return nil, nil, diagnostics.NewError(diagnostics.ErrL002, tok,
					"'end' outside of a function block", text)
			}
			if replaced := table.Define(current); replaced != nil {
				log.Debug("function redefined",
					zap.String("name", current.Name),
					zap.Int("previous_line", replaced.Token.Line),
					zap.Int("line", current.Token.Line),
				)
			}
			current = nil

		case current != nil:
			current.Body = append(current.Body, stmt)

		default:
			residual = append(residual, stmt)
		}
	}

	if current != nil {
		return nil, nil, diagnostics.NewError(diagnostics.ErrL001, current.Token, header)
	}

	return table, residual, nil
}
