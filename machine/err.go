package machine

import (
	"errors"

	"github.com/codeyaruj/math-sim/translate"
)

var f = translate.From

var (
	ErrEmptyInput = errors.New(f("empty input"))
)

// ErrCrossCheck reports a disagreement between the tree-walking evaluator
// and the compiled run at the 32-bit level. It always indicates a compiler
// bug, never bad input.
type ErrCrossCheck struct {
	Eval int64
	Cpu  int64
}

func (err *ErrCrossCheck) Error() string {
	return f("evaluator (0x%08x) and CPU (0x%08x) disagree at the 32-bit level",
		uint32(err.Eval), uint32(err.Cpu))
}
