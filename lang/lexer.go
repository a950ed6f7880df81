// Package lang implements the expression front end: lexer, recursive
// descent parser, AST, and a tree-walking reference evaluator used to
// cross-check compiled execution.
package lang

import (
	"math"
)

// TokenType classifies a scanned token.
type TokenType int

//go:generate go tool stringer -linecomment -type=TokenType
const (
	TOK_NUMBER  = TokenType(iota) // NUMBER
	TOK_PLUS                      // +
	TOK_MINUS                     // -
	TOK_MUL                       // *
	TOK_DIV                       // /
	TOK_LPAREN                    // (
	TOK_RPAREN                    // )
	TOK_EOF                       // EOF
	TOK_INVALID                   // INVALID
)

// Token is one lexical unit. Value is meaningful only for TOK_NUMBER;
// Pos is the byte offset in the source, for error messages.
type Token struct {
	Type  TokenType
	Value int64
	Pos   int
}

// Lexer scans a source string one token at a time with a single token of
// look-ahead. It owns no memory beyond the string it points into.
type Lexer struct {
	src string
	pos int

	current    Token
	hasCurrent bool
	err        error
}

// NewLexer creates a lexer over src.
func NewLexer(src string) (lx *Lexer) {
	lx = &Lexer{
		src: src,
	}

	return
}

// Err returns the reason for the most recent TOK_INVALID token.
func (lx *Lexer) Err() error {
	return lx.err
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Next scans and returns the next token, advancing the stream. Each
// character is visited at most once.
func (lx *Lexer) Next() (t Token) {
	// Drain the look-ahead cache first.
	if lx.hasCurrent {
		lx.hasCurrent = false
		return lx.current
	}

	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}

	if lx.pos >= len(lx.src) {
		return Token{Type: TOK_EOF, Pos: lx.pos}
	}

	start := lx.pos
	c := lx.src[lx.pos]

	// Multi-digit integer literal, overflow-checked.
	if isDigit(c) {
		var value int64
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			digit := int64(lx.src[lx.pos] - '0')
			// value*10 + digit > MaxInt64, rearranged to avoid the
			// overflow it is testing for.
			if value > (math.MaxInt64-digit)/10 {
				lx.err = ErrNumberOverflow
				// Drain remaining digits so the stream stays consistent.
				for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
					lx.pos++
				}
				return Token{Type: TOK_INVALID, Pos: start}
			}
			value = value*10 + digit
			lx.pos++
		}
		return Token{Type: TOK_NUMBER, Value: value, Pos: start}
	}

	lx.pos++ // consume single-character token

	switch c {
	case '+':
		t = Token{Type: TOK_PLUS, Pos: start}
	case '-':
		t = Token{Type: TOK_MINUS, Pos: start}
	case '*':
		t = Token{Type: TOK_MUL, Pos: start}
	case '/':
		t = Token{Type: TOK_DIV, Pos: start}
	case '(':
		t = Token{Type: TOK_LPAREN, Pos: start}
	case ')':
		t = Token{Type: TOK_RPAREN, Pos: start}
	default:
		lx.err = ErrBadCharacter
		t = Token{Type: TOK_INVALID, Pos: start}
	}

	return
}

// Peek returns the next token without consuming it. Idempotent: repeated
// peeks return the same token; the cache is invalidated by the next call
// to Next.
func (lx *Lexer) Peek() Token {
	if !lx.hasCurrent {
		lx.current = lx.Next()
		lx.hasCurrent = true
	}

	return lx.current
}
