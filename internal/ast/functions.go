package ast

import (
	"sort"

	"github.com/funvibe/levelc/internal/token"
)

// FunctionSignature is the header of a function block. Outputs and inputs
// bind positionally at call sites.
type FunctionSignature struct {
	Name    string
	Outputs []string
	Inputs  []string
}

// FunctionDefinition is a signature with its body. It is never mutated once
// the table is built.
type FunctionDefinition struct {
	FunctionSignature
	Token token.Token // the 'function' keyword of the header
	Body  []Statement
}

// IsParameter reports whether name is an input or an output.
func (f *FunctionDefinition) IsParameter(name string) bool {
	for _, p := range f.Inputs {
		if p == name {
			return true
		}
	}
	for _, p := range f.Outputs {
		if p == name {
			return true
		}
	}
	return false
}

// FunctionTable maps function names to definitions.
type FunctionTable struct {
	defs map[string]*FunctionDefinition
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{defs: make(map[string]*FunctionDefinition)}
}

// Define stores def under its name. A later definition replaces an earlier
// one; the replaced definition is returned.
func (t *FunctionTable) Define(def *FunctionDefinition) (replaced *FunctionDefinition) {
	replaced = t.defs[def.Name]
	t.defs[def.Name] = def
	return replaced
}

func (t *FunctionTable) Lookup(name string) (*FunctionDefinition, bool) {
	if t == nil {
		return nil, false
	}
	def, ok := t.defs[name]
	return def, ok
}

func (t *FunctionTable) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

func (t *FunctionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

// Names returns the defined names in sorted order.
func (t *FunctionTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.defs))
	for name := range t.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
