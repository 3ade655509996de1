package inliner

import (
	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/lexer"
)

// bindings maps the formal names of one expansion (inputs, outputs and
// body locals) to their replacement text. It lives for a single call site.
type bindings map[string]string

func newBindings(def *ast.FunctionDefinition, args, outputs []string) bindings {
	b := make(bindings, len(def.Inputs)+len(def.Outputs))
	for i, param := range def.Inputs {
		b[param] = args[i]
	}
	for i, param := range def.Outputs {
		b[param] = outputs[i]
	}
	return b
}

func (b bindings) bound(name string) bool {
	_, ok := b[name]
	return ok
}

func (b bindings) bind(name, text string) {
	b[name] = text
}

// apply substitutes bound identifiers in text in a single pass.
func (b bindings) apply(text string) string {
	return lexer.RewriteMap(text, b)
}
