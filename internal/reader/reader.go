package reader

import (
	"strings"

	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/lexer"
	"github.com/funvibe/levelc/internal/parser"
	"github.com/funvibe/levelc/internal/pipeline"
)

// ReaderProcessor splits the source into statements and reserves every
// source identifier so generated names cannot collide with it.
type ReaderProcessor struct{}

func (rp *ReaderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	gen := ctx.Generator()
	ctx.Statements = Read(ctx.SourceCode)
	for _, stmt := range ctx.Statements {
		gen.Reserve(lexer.Identifiers(stmt.String())...)
	}
	ctx.Log().Debug("read source",
		zap.String("file", ctx.FilePath),
		zap.Int("statements", len(ctx.Statements)),
	)
	return ctx
}

// Read returns one statement per non-blank line, in source order.
func Read(source string) []ast.Statement {
	var statements []ast.Statement
	for i, line := range strings.Split(source, "\n") {
		line = trim(line)
		if line == "" {
			continue
		}
		statements = append(statements, parser.ParseStatement(line, i+1))
	}
	return statements
}

func trim(line string) string {
	return strings.Trim(line, " \t\r")
}
