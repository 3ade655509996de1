package parser

import (
	"fmt"
	"strings"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/token"
)

// ParseStatement classifies a trimmed source line. Lines that are not a
// well-formed assignment become Opaque.
func ParseStatement(line string, lineNo int) ast.Statement {
	p := New(line, lineNo)
	first := p.curToken
	if assign := p.parseAssignment(); assign != nil {
		assign.Token = first
		assign.Raw = line
		return assign
	}
	return &ast.Opaque{Token: first, Text: line}
}

func (p *Parser) parseAssignment() *ast.Assignment {
	stmt := &ast.Assignment{}

	switch {
	case p.curTokenIs(token.IDENT):
		stmt.Outputs = []string{p.curToken.Lexeme}
	case p.curTokenIs(token.LBRACKET):
		outputs, err := p.parseIdentifierList(token.RBRACKET)
		if err != nil {
			return nil
		}
		stmt.Outputs = outputs
		stmt.Bracketed = true
	default:
		return nil
	}

	if err := p.expectPeek(token.ASSIGN); err != nil {
		return nil
	}
	p.nextToken()
	if p.curTokenIs(token.EOF) {
		return nil
	}

	start := p.curToken.Offset
	end := len(p.input)

	// The activator follows the last `$` outside any parentheses.
	depth := 0
	var dollar *token.Token
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.DOLLAR:
			if depth == 0 {
				dollar = &p.tokens[i]
			}
		}
	}
	if dollar != nil {
		end = dollar.Offset
		activator := strings.TrimSpace(p.input[dollar.End():])
		if activator == "" || strings.ContainsAny(activator, " \t") {
			return nil
		}
		stmt.Activator = activator
	}

	stmt.Expression = strings.TrimSpace(p.input[start:end])
	if stmt.Expression == "" {
		return nil
	}
	return stmt
}

// parseIdentifierList parses `ident, ident, ...` up to closing. The current
// token is the opening delimiter; on success it is the closing one.
func (p *Parser) parseIdentifierList(closing token.TokenType) ([]string, error) {
	identifiers := []string{}

	if p.peekTokenIs(closing) {
		p.nextToken()
		return identifiers, nil
	}

	for {
		if err := p.expectPeek(token.IDENT); err != nil {
			return nil, err
		}
		identifiers = append(identifiers, p.curToken.Lexeme)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if err := p.expectPeek(closing); err != nil {
			return nil, err
		}
		return identifiers, nil
	}
}

// IsFunctionHeader reports whether the line starts with the function keyword.
// It says nothing about whether the rest of the header is well formed.
func IsFunctionHeader(line string) bool {
	return New(line, 1).curTokenIs(token.FUNCTION)
}

// IsEnd reports whether the line is exactly the block terminator.
func IsEnd(line string) bool {
	p := New(line, 1)
	return p.curTokenIs(token.END) && p.peekTokenIs(token.EOF)
}

// ParseFunctionHeader parses `function [o1,...] := name(i1,...)`.
func ParseFunctionHeader(line string, lineNo int) (*ast.FunctionSignature, error) {
	p := New(line, lineNo)
	if !p.curTokenIs(token.FUNCTION) {
		return nil, p.unexpected(p.curToken, token.FUNCTION)
	}

	if err := p.expectPeek(token.LBRACKET); err != nil {
		return nil, err
	}
	outputs, err := p.parseIdentifierList(token.RBRACKET)
	if err != nil {
		return nil, err
	}

	if err := p.expectPeek(token.ASSIGN); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Lexeme

	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	inputs, err := p.parseIdentifierList(token.RPAREN)
	if err != nil {
		return nil, err
	}

	if !p.peekTokenIs(token.EOF) {
		p.nextToken()
		return nil, fmt.Errorf("unexpected %q after parameter list", p.rest())
	}

	seen := make(map[string]bool, len(outputs)+len(inputs))
	for _, param := range append(append([]string{}, outputs...), inputs...) {
		if seen[param] {
			return nil, fmt.Errorf("parameter %q declared twice", param)
		}
		seen[param] = true
	}

	return &ast.FunctionSignature{Name: name, Outputs: outputs, Inputs: inputs}, nil
}
