package mem

import (
	"errors"

	"github.com/codeyaruj/math-sim/translate"
)

var f = translate.From

var (
	ErrUnaligned = errors.New(f("unaligned memory access"))
	ErrBounds    = errors.New(f("memory access out of bounds"))
)

// ErrAccess carries the failing operation and address alongside the
// underlying validation error.
type ErrAccess struct {
	Op   string
	Addr uint32
	Err  error
}

func (err *ErrAccess) Error() string {
	return f("%v at 0x%08x: %v", err.Op, err.Addr, err.Err)
}

func (err *ErrAccess) Unwrap() error {
	return err.Err
}
