package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func parse(src string) (*Node, error) {
	return NewParser(NewLexer(src)).Parse()
}

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	root, err := parse("42")
	assert.NoError(err)
	assert.Equal(NewNumber(42), root)
}

func TestParsePrecedence(t *testing.T) {
	assert := assert.New(t)

	// 1 + 2 * 3 parses as 1 + (2 * 3).
	root, err := parse("1 + 2 * 3")
	assert.NoError(err)

	want := NewBinary(OP_ADD,
		NewNumber(1),
		NewBinary(OP_MUL, NewNumber(2), NewNumber(3)))
	assert.Equal(want, root)
}

func TestParseLeftAssociativity(t *testing.T) {
	assert := assert.New(t)

	// 10 - 4 - 3 parses as (10 - 4) - 3.
	root, err := parse("10 - 4 - 3")
	assert.NoError(err)

	want := NewBinary(OP_SUB,
		NewBinary(OP_SUB, NewNumber(10), NewNumber(4)),
		NewNumber(3))
	assert.Equal(want, root)
}

func TestParseParensOverridePrecedence(t *testing.T) {
	assert := assert.New(t)

	root, err := parse("(1 + 2) * 3")
	assert.NoError(err)

	want := NewBinary(OP_MUL,
		NewBinary(OP_ADD, NewNumber(1), NewNumber(2)),
		NewNumber(3))
	assert.Equal(want, root)
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		src  string
		want error
	}){
		{"empty", "", ErrExpectedFactor},
		{"lonely_operator", "+", ErrExpectedFactor},
		{"missing_rhs", "1 +", ErrExpectedFactor},
		{"missing_rparen", "(1 + 2", ErrExpectedRparen},
		{"trailing_tokens", "1 2", ErrTrailingInput},
		{"trailing_rparen", "1)", ErrTrailingInput},
		{"bad_character", "1 + $", ErrBadCharacter},
		{"overflow_literal", "99999999999999999999", ErrNumberOverflow},
	}

	for _, entry := range table {
		root, err := parse(entry.src)
		assert.Nil(root, entry.name)
		assert.ErrorIs(err, entry.want, entry.name)
	}
}

func TestParseErrorPosition(t *testing.T) {
	assert := assert.New(t)

	_, err := parse("1 + $")

	var perr *ErrParse
	assert.ErrorAs(err, &perr)
	assert.Equal(4, perr.Pos)
	assert.Equal(TOK_INVALID, perr.Got)
}

func TestASTDump(t *testing.T) {
	assert := assert.New(t)

	root, err := parse("1 + 2 * 3")
	assert.NoError(err)

	dump := root.Dump()
	assert.Contains(dump, "ADD")
	assert.Contains(dump, "MUL")
	assert.Contains(dump, "NUMBER(1)")
	assert.Contains(dump, "NUMBER(2)")
	assert.Contains(dump, "NUMBER(3)")
}
