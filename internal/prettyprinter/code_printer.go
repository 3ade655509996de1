package prettyprinter

import (
	"bytes"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/pipeline"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders statements one per line. Statements no stage has
// touched keep their original text unless Canonical is set.
type CodePrinter struct {
	buf bytes.Buffer

	// Canonical re-renders every assignment as `lhs := expr [$ act]`.
	Canonical bool
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) writeln(s string) {
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *CodePrinter) VisitAssignment(a *ast.Assignment) {
	if p.Canonical {
		p.writeln(a.Canonical())
		return
	}
	p.writeln(a.String())
}

func (p *CodePrinter) VisitOpaque(o *ast.Opaque) {
	p.writeln(o.Text)
}

// Print renders statements as source text.
func Print(statements []ast.Statement) string {
	p := NewCodePrinter()
	for _, stmt := range statements {
		stmt.Accept(p)
	}
	return p.String()
}

// PrinterProcessor renders ctx.Statements into ctx.Output.
type PrinterProcessor struct {
	Canonical bool
}

func (pp *PrinterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	p := &CodePrinter{Canonical: pp.Canonical}
	for _, stmt := range ctx.Statements {
		stmt.Accept(p)
	}
	ctx.Output = p.String()
	return ctx
}
