package cpu

import (
	"errors"

	"github.com/codeyaruj/math-sim/ir"
	"github.com/codeyaruj/math-sim/translate"
)

var f = translate.From

var (
	ErrRegisterRange = errors.New(f("register out of range"))
	ErrJumpTarget    = errors.New(f("jump target out of range"))
	ErrNoMemory      = errors.New(f("no memory attached"))
	ErrDivideByZero  = errors.New(f("division by zero"))
	ErrStepLimit     = errors.New(f("step limit exceeded, likely infinite loop"))
	ErrEmptyProgram  = errors.New(f("empty program"))
	ErrUnknownOpcode = errors.New(f("unknown opcode"))
)

// Error carries the program-counter position and instruction at which a
// run aborted.
type Error struct {
	Pc    int
	Instr ir.Instr
	Err   error
}

func (err *Error) Error() string {
	return f("pc=%d %v: %v", err.Pc, err.Instr, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}
