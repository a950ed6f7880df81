package lang

import (
	"errors"

	"github.com/codeyaruj/math-sim/translate"
)

var f = translate.From

var (
	// Lexer errors
	ErrBadCharacter   = errors.New(f("invalid character"))
	ErrNumberOverflow = errors.New(f("integer literal out of range"))

	// Parser errors
	ErrExpectedFactor = errors.New(f("expected a number or '('"))
	ErrExpectedRparen = errors.New(f("expected ')'"))
	ErrTrailingInput  = errors.New(f("unexpected token after expression"))

	// Evaluator errors
	ErrDivideByZero    = errors.New(f("division by zero"))
	ErrNilNode         = errors.New(f("nil node"))
	ErrUnknownNode     = errors.New(f("unknown node type"))
	ErrUnknownOperator = errors.New(f("unknown operator"))
)

// ErrParse carries the source position and offending token of a parse
// failure.
type ErrParse struct {
	Pos int
	Got TokenType
	Err error
}

func (err *ErrParse) Error() string {
	return f("position %d (token '%v'): %v", err.Pos, err.Got, err.Err)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}
