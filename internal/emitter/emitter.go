package emitter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/config"
	"github.com/funvibe/levelc/internal/diagnostics"
	"github.com/funvibe/levelc/internal/pipeline"
	"github.com/funvibe/levelc/internal/token"
)

// Setter is one Level 0 record: variable := function, gated by activator.
type Setter struct {
	Variable  string
	Function  string
	Activator string
	Priority  int
}

// EmitterProcessor renders the statement stream as a Level 0 document into
// ctx.Output.
type EmitterProcessor struct{}

func (ep *EmitterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}

	cfg := ctx.Settings().Emit
	setters := Setters(ctx.Statements, cfg, ctx.Log())

	var buf bytes.Buffer
	if err := Render(&buf, cfg.Root, setters); err != nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrL000, token.Token{}, "emitter: "+err.Error()))
		return ctx
	}
	ctx.Output = buf.String()
	return ctx
}

// Setters converts single-output assignments to records. Anything else is
// dropped without error.
func Setters(statements []ast.Statement, cfg config.EmitConfig, log *zap.Logger) []Setter {
	if log == nil {
		log = zap.NewNop()
	}
	activator := cfg.Activator
	if activator == "" {
		activator = config.DefaultActivator
	}

	var setters []Setter
	for _, stmt := range statements {
		assign, ok := stmt.(*ast.Assignment)
		if !ok || len(assign.Outputs) != 1 {
			log.Debug("statement not emitted",
				zap.Int("line", stmt.GetToken().Line),
				zap.String("text", stmt.String()),
			)
			continue
		}
		s := Setter{
			Variable:  assign.Outputs[0],
			Function:  assign.Expression,
			Activator: assign.Activator,
			Priority:  cfg.Priority,
		}
		if s.Activator == "" {
			s.Activator = activator
		}
		setters = append(setters, s)
	}
	return setters
}

// Render writes the document:
//
//	<Variables>
//	  <Setter variable="x" function="f(a)" activator="1" priority="0" />
//	</Variables>
func Render(w io.Writer, root string, setters []Setter) error {
	if root == "" {
		root = config.DefaultRootElement
	}
	if _, err := fmt.Fprintf(w, "<%s>\n", root); err != nil {
		return err
	}
	for _, s := range setters {
		if _, err := io.WriteString(w, "  <"+config.DefaultSetterElement); err != nil {
			return err
		}
		attrs := [][2]string{
			{"variable", s.Variable},
			{"function", s.Function},
			{"activator", s.Activator},
			{"priority", strconv.Itoa(s.Priority)},
		}
		for _, attr := range attrs {
			if err := writeAttr(w, attr[0], attr[1]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, " />\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>\n", root)
	return err
}

func writeAttr(w io.Writer, name, value string) error {
	if _, err := io.WriteString(w, " "+name+`="`); err != nil {
		return err
	}
	if err := xml.EscapeText(w, []byte(value)); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}
