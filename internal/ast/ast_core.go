package ast

import (
	"strings"

	"github.com/funvibe/levelc/internal/token"
)

// Visitor walks the statement variants.
type Visitor interface {
	VisitAssignment(a *Assignment)
	VisitOpaque(o *Opaque)
}

// Statement is one logical source line.
type Statement interface {
	Accept(v Visitor)
	GetToken() token.Token
	String() string
	statementNode()
}

// Assignment is `out := expr` or `[o1,o2] := expr`, with an optional
// `$ activator` suffix.
type Assignment struct {
	Token      token.Token // first token of the line
	Outputs    []string
	Bracketed  bool   // outputs were written as [..]
	Expression string // trimmed, without the activator
	Activator  string // empty when absent
	Raw        string // original line; empty once a stage rebuilds the statement
}

func (a *Assignment) Accept(v Visitor)      { v.VisitAssignment(a) }
func (a *Assignment) statementNode()        {}
func (a *Assignment) GetToken() token.Token { return a.Token }

// String returns the original text when the statement is untouched,
// otherwise the canonical rendering.
func (a *Assignment) String() string {
	if a.Raw != "" {
		return a.Raw
	}
	return a.Canonical()
}

// Canonical renders the assignment as `lhs := expr [$ act]`.
func (a *Assignment) Canonical() string {
	var out strings.Builder
	out.WriteString(a.LHS())
	out.WriteString(" := ")
	out.WriteString(a.Expression)
	if a.Activator != "" {
		out.WriteString(" $ ")
		out.WriteString(a.Activator)
	}
	return out.String()
}

// LHS renders the output list. A single output written without brackets
// stays without brackets.
func (a *Assignment) LHS() string {
	if len(a.Outputs) == 1 && !a.Bracketed {
		return a.Outputs[0]
	}
	return "[" + strings.Join(a.Outputs, ",") + "]"
}

// Rebuild returns a copy with a new expression. The copy has no Raw text.
func (a *Assignment) Rebuild(expr string) *Assignment {
	return &Assignment{
		Token:      a.Token,
		Outputs:    append([]string(nil), a.Outputs...),
		Bracketed:  a.Bracketed,
		Expression: expr,
		Activator:  a.Activator,
	}
}

// Opaque is any line that is not an assignment. Every stage passes it through.
type Opaque struct {
	Token token.Token
	Text  string
}

func (o *Opaque) Accept(v Visitor)      { v.VisitOpaque(o) }
func (o *Opaque) statementNode()        {}
func (o *Opaque) GetToken() token.Token { return o.Token }
func (o *Opaque) String() string        { return o.Text }
