package parser

import (
	"strings"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/lexer"
	"github.com/funvibe/levelc/internal/token"
)

// ParseCalls finds every application `name(args)` in expr, outermost first.
// The name must touch its opening parenthesis; parentheses inside string
// literals do not count. Applications with unbalanced parentheses are skipped.
func ParseCalls(expr string) []*ast.CallExpression {
	tokens := lexer.Tokenize(expr, 1)
	var calls []*ast.CallExpression

	for i := 0; i+1 < len(tokens); i++ {
		name, open := tokens[i], tokens[i+1]
		if !name.IsName() || open.Type != token.LPAREN || open.Offset != name.End() {
			continue
		}

		closing, nested := matchParen(tokens, i+1)
		if closing < 0 {
			continue
		}
		end := tokens[closing].End()
		calls = append(calls, &ast.CallExpression{
			Function:  name.Lexeme,
			Arguments: SplitArguments(expr[open.End():tokens[closing].Offset]),
			Offset:    name.Offset,
			Length:    end - name.Offset,
			Nested:    nested,
		})
	}

	return calls
}

// matchParen returns the index of the parenthesis closing tokens[open] and
// whether any parenthesis occurs in between, or -1 if it is never closed.
func matchParen(tokens []token.Token, open int) (int, bool) {
	depth := 0
	nested := false
	for j := open; j < len(tokens); j++ {
		switch tokens[j].Type {
		case token.LPAREN:
			depth++
			if j != open {
				nested = true
			}
		case token.RPAREN:
			depth--
			if depth == 0 {
				return j, nested
			}
			nested = true
		}
	}
	return -1, nested
}

// ParseCall returns the application when expr consists of exactly one.
func ParseCall(expr string) (*ast.CallExpression, bool) {
	expr = strings.TrimSpace(expr)
	calls := ParseCalls(expr)
	if len(calls) == 0 {
		return nil, false
	}
	call := calls[0]
	if call.Offset != 0 || call.Length != len(expr) {
		return nil, false
	}
	return call, true
}

// SplitArguments splits an argument list on commas that are not enclosed in
// parentheses or brackets. Each argument is trimmed. An empty list yields nil.
func SplitArguments(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var args []string
	depth := 0
	last := 0
	for _, tok := range lexer.Tokenize(text, 1) {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
		case token.COMMA:
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[last:tok.Offset]))
				last = tok.End()
			}
		}
	}
	return append(args, strings.TrimSpace(text[last:]))
}
