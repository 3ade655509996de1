package token

import (
	"fmt"

	"github.com/funvibe/levelc/internal/config"
)

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	ASSIGN   TokenType = ":="
	COMMA    TokenType = ","
	DOLLAR   TokenType = "$"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// OPERATOR covers any other punctuation run (+, -, *, <=, ...).
	// The lowering stages treat expression text as opaque between calls,
	// so operators only need to be skipped, not classified.
	OPERATOR TokenType = "OPERATOR"

	FUNCTION TokenType = "FUNCTION"
	END      TokenType = "END"
)

var keywords = map[string]TokenType{
	config.FunctionKeyword: FUNCTION,
	config.EndKeyword:      END,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is a lexeme with its position. Line and Column are 1-based;
// Offset is the byte offset into the text that was tokenized.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Lexeme)
}

// IsName reports whether the token can name a variable or function.
// Keywords count as names outside of statement-initial position.
func (t Token) IsName() bool {
	return t.Type == IDENT || t.Type == FUNCTION || t.Type == END
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
