package ast

import "strings"

// CallExpression is an application `name(arg, ...)` found inside expression
// text. Offset and Length locate the whole application in that text.
type CallExpression struct {
	Function  string
	Arguments []string
	Offset    int
	Length    int
	// Nested is true when the argument text contains parentheses,
	// i.e. the application is not yet reducible.
	Nested bool
}

// End returns the offset just past the application.
func (c *CallExpression) End() int {
	return c.Offset + c.Length
}

func (c *CallExpression) String() string {
	return c.Function + "(" + strings.Join(c.Arguments, ",") + ")"
}
