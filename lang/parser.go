package lang

// Parser is a recursive-descent parser over the grammar:
//
//	expr   → term (('+' | '-') term)*
//	term   → factor (('*' | '/') factor)*
//	factor → NUMBER | '(' expr ')'
//
// Both binary productions are left-associative via their iterative loops.
type Parser struct {
	lx *Lexer
}

// NewParser creates a parser over the given token stream.
func NewParser(lx *Lexer) (p *Parser) {
	p = &Parser{
		lx: lx,
	}

	return
}

// Parse parses a complete expression. After a valid expression the very
// next token must be EOF.
func (p *Parser) Parse() (root *Node, err error) {
	root, err = p.expr()
	if err != nil {
		return
	}

	t := p.lx.Peek()
	if t.Type != TOK_EOF {
		root = nil
		err = &ErrParse{Pos: t.Pos, Got: t.Type, Err: ErrTrailingInput}
	}

	return
}

func (p *Parser) expr() (left *Node, err error) {
	left, err = p.term()
	if err != nil {
		return
	}

	for {
		t := p.lx.Peek()
		if t.Type != TOK_PLUS && t.Type != TOK_MINUS {
			break
		}
		p.lx.Next() // consume operator

		op := OP_ADD
		if t.Type == TOK_MINUS {
			op = OP_SUB
		}

		var right *Node
		right, err = p.term()
		if err != nil {
			left = nil
			return
		}

		left = NewBinary(op, left, right)
	}

	return
}

func (p *Parser) term() (left *Node, err error) {
	left, err = p.factor()
	if err != nil {
		return
	}

	for {
		t := p.lx.Peek()
		if t.Type != TOK_MUL && t.Type != TOK_DIV {
			break
		}
		p.lx.Next() // consume operator

		op := OP_MUL
		if t.Type == TOK_DIV {
			op = OP_DIV
		}

		var right *Node
		right, err = p.factor()
		if err != nil {
			left = nil
			return
		}

		left = NewBinary(op, left, right)
	}

	return
}

func (p *Parser) factor() (n *Node, err error) {
	t := p.lx.Peek()

	switch t.Type {
	case TOK_NUMBER:
		p.lx.Next() // consume
		n = NewNumber(t.Value)

	case TOK_LPAREN:
		p.lx.Next() // consume '('
		n, err = p.expr()
		if err != nil {
			return
		}
		closing := p.lx.Next()
		if closing.Type != TOK_RPAREN {
			n = nil
			err = &ErrParse{Pos: closing.Pos, Got: closing.Type, Err: ErrExpectedRparen}
		}

	case TOK_INVALID:
		p.lx.Next()
		err = &ErrParse{Pos: t.Pos, Got: t.Type, Err: p.lx.Err()}

	default:
		p.lx.Next() // consume so the position is accurate
		err = &ErrParse{Pos: t.Pos, Got: t.Type, Err: ErrExpectedFactor}
	}

	return
}
