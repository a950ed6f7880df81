package codegen

import (
	"errors"

	"github.com/codeyaruj/math-sim/translate"
)

var f = translate.From

var (
	ErrNilNode         = errors.New(f("nil AST node"))
	ErrUnknownNode     = errors.New(f("unknown node type"))
	ErrUnknownOperator = errors.New(f("unknown binary operator"))
)
