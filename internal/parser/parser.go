package parser

import (
	"fmt"

	"github.com/funvibe/levelc/internal/lexer"
	"github.com/funvibe/levelc/internal/token"
)

// Parser is a recursive-descent parser over the tokens of one line.
type Parser struct {
	input  string
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token
}

// New creates a parser for a single source line.
func New(input string, line int) *Parser {
	p := &Parser{input: input, tokens: lexer.Tokenize(input, line)}
	p.pos = -1
	p.nextToken()
	return p
}

func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	line := 1
	if len(p.tokens) > 0 {
		line = p.tokens[0].Line
	}
	return token.Token{Type: token.EOF, Line: line, Column: len(p.input) + 1, Offset: len(p.input)}
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.tokenAt(p.pos)
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has type t.
func (p *Parser) expectPeek(t token.TokenType) error {
	if !p.peekTokenIs(t) {
		return p.unexpected(p.peekToken, t)
	}
	p.nextToken()
	return nil
}

func (p *Parser) unexpected(got token.Token, want token.TokenType) error {
	if got.Type == token.EOF {
		return fmt.Errorf("expected %s, got end of line", want)
	}
	return fmt.Errorf("expected %s, got %q at column %d", want, got.Lexeme, got.Column)
}

// rest returns the raw input from the start of the current token.
func (p *Parser) rest() string {
	return p.input[p.curToken.Offset:]
}
