package lexer

import (
	"strings"

	"github.com/funvibe/levelc/internal/token"
)

// Lexer tokenizes a single statement or expression. Statements never span
// lines, so the line number is fixed for the lifetime of a Lexer.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	return NewAt(input, 1)
}

// NewAt creates a lexer whose tokens report the given source line.
func NewAt(input string, line int) *Lexer {
	l := &Lexer{input: input, line: line}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	start, col := l.position, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: col, Offset: start}
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.spanToken(token.ASSIGN, start, col)
		} else {
			tok = l.operator(start, col)
			return tok
		}
	case ',':
		tok = l.spanToken(token.COMMA, start, col)
	case '$':
		tok = l.spanToken(token.DOLLAR, start, col)
	case '(':
		tok = l.spanToken(token.LPAREN, start, col)
	case ')':
		tok = l.spanToken(token.RPAREN, start, col)
	case '[':
		tok = l.spanToken(token.LBRACKET, start, col)
	case ']':
		tok = l.spanToken(token.RBRACKET, start, col)
	case '"':
		return l.readString(start, col)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Line: l.line, Column: col, Offset: start}
		} else if isDigit(l.ch) {
			num := l.readNumber()
			return token.Token{Type: token.NUMBER, Lexeme: num, Line: l.line, Column: col, Offset: start}
		}
		return l.operator(start, col)
	}

	l.readChar()
	return tok
}

// spanToken builds a token covering input[start:l.position+1], i.e. up to
// and including the current char.
func (l *Lexer) spanToken(t token.TokenType, start, col int) token.Token {
	return token.Token{Type: t, Lexeme: l.input[start : l.position+1], Line: l.line, Column: col, Offset: start}
}

// operator consumes a run of punctuation that has no dedicated token type.
func (l *Lexer) operator(start, col int) token.Token {
	for l.ch != 0 && isOperatorChar(l.ch) {
		if l.ch == ':' && l.peekChar() == '=' && l.position > start {
			break
		}
		l.readChar()
	}
	if l.position == start {
		// Unknown byte: emit it alone so the caller always makes progress.
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Line: l.line, Column: col, Offset: start}
	}
	return token.Token{Type: token.OPERATOR, Lexeme: l.input[start:l.position], Line: l.line, Column: col, Offset: start}
}

func (l *Lexer) readString(start, col int) token.Token {
	l.readChar() // opening quote
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Line: l.line, Column: col, Offset: start}
	}
	l.readChar() // closing quote
	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Line: l.line, Column: col, Offset: start}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber consumes a numeric literal. Trailing word characters belong to
// the literal (1e5, 0x1F, 2x), so an identifier never starts inside a number.
func (l *Lexer) readNumber() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // .
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isOperatorChar(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', ',', '$', '(', ')', '[', ']', '"':
		return false
	}
	return !isLetter(ch) && !isDigit(ch)
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// Tokenize returns every token of input, excluding the trailing EOF.
func Tokenize(input string, line int) []token.Token {
	l := NewAt(input, line)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Identifiers returns the names of all identifier tokens in input, in order
// of appearance and with duplicates.
func Identifiers(input string) []string {
	var names []string
	for _, tok := range Tokenize(input, 1) {
		if tok.IsName() {
			names = append(names, tok.Lexeme)
		}
	}
	return names
}

// Rewrite replaces identifier tokens of input for which replace returns
// true. All other text, whitespace included, is kept byte for byte.
// Replacement text is never rescanned.
func Rewrite(input string, replace func(name string) (string, bool)) string {
	var out strings.Builder
	last := 0
	for _, tok := range Tokenize(input, 1) {
		if !tok.IsName() {
			continue
		}
		repl, ok := replace(tok.Lexeme)
		if !ok {
			continue
		}
		out.WriteString(input[last:tok.Offset])
		out.WriteString(repl)
		last = tok.End()
	}
	if last == 0 {
		return input
	}
	out.WriteString(input[last:])
	return out.String()
}

// RewriteMap is Rewrite driven by a lookup table.
func RewriteMap(input string, bindings map[string]string) string {
	if len(bindings) == 0 {
		return input
	}
	return Rewrite(input, func(name string) (string, bool) {
		repl, ok := bindings[name]
		return repl, ok
	})
}
