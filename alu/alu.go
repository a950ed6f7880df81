// Package alu implements the bit-accurate 32-bit arithmetic logic unit.
//
// All operations work on unsigned 32-bit words. Signed interpretation is
// always derived from the two's-complement bit pattern, never from native
// signed arithmetic. Addition and subtraction are computed through an
// explicit ripple-carry adder so the carry flag falls out of the actual
// bit computation rather than being inferred afterwards.
package alu

import (
	"fmt"
)

// WORD_BITS is the width of a machine word in bits.
const WORD_BITS = 32

// Word is the canonical value type for the whole machine. Every register,
// memory cell, and immediate (after truncation) is a Word.
type Word uint32

// Flags is the four-bit condition code set, matching the ARM/RISC convention:
//
//	Z — result == 0
//	N — bit 31 of the result (two's-complement sign)
//	C — unsigned carry out of bit 31 (ADD); complement of borrow (SUB)
//	V — signed overflow
//
// Each field holds 0 or 1.
type Flags struct {
	Z uint8
	N uint8
	C uint8
	V uint8
}

// String returns the flag set as "Z=0 N=0 C=0 V=0".
func (f Flags) String() string {
	return fmt.Sprintf("Z=%d N=%d C=%d V=%d", f.Z, f.N, f.C, f.V)
}

// rippleAdd adds a and b bit-by-bit from LSB to MSB, propagating carry
// exactly as a hardware ripple-carry adder would. Both Add and Sub are
// built on it; they differ only in how b and carryIn are prepared.
//
// Per-bit logic:
//
//	sum   = a ^ b ^ carry
//	carry = (a & b) | (carry & (a ^ b))
//
// Z, N, and C are filled from the computed result; V is left to the caller
// because it depends on the original operand signs.
func rippleAdd(a, b Word, carryIn uint32) (result Word, flags Flags) {
	carry := carryIn & 1

	for i := 0; i < WORD_BITS; i++ {
		abit := (uint32(a) >> i) & 1
		bbit := (uint32(b) >> i) & 1

		sum := abit ^ bbit ^ carry
		carry = (abit & bbit) | (carry & (abit ^ bbit))

		result |= Word(sum << i)
	}

	// Final carry out of bit 31 is the C flag.
	flags.C = uint8(carry & 1)
	if result == 0 {
		flags.Z = 1
	}
	flags.N = uint8((result >> 31) & 1)

	return
}

// Add computes a + b with ripple-carry propagation.
//
// Overflow rule for addition: adding two same-sign operands that produce a
// result of the opposite sign sets V.
func Add(a, b Word) (result Word, flags Flags) {
	result, flags = rippleAdd(a, b, 0)

	signA := uint8((a >> 31) & 1)
	signB := uint8((b >> 31) & 1)
	signR := uint8((result >> 31) & 1)

	if signA == signB && signR != signA {
		flags.V = 1
	}

	return
}

// Sub computes a - b as a + ^b + 1, reusing the ripple-carry adder with a
// carry-in of 1. The combined carry out satisfies the hardware borrow
// convention: C=1 means no borrow (a >= b unsigned), C=0 means borrow.
//
// Overflow rule for subtraction: opposite-sign operands producing a result
// whose sign differs from a set V.
func Sub(a, b Word) (result Word, flags Flags) {
	result, flags = rippleAdd(a, ^b, 1)

	signA := uint8((a >> 31) & 1)
	signB := uint8((b >> 31) & 1)
	signR := uint8((result >> 31) & 1)

	if signA != signB && signR != signA {
		flags.V = 1
	}

	return
}

// Mul computes the low 32 bits of the 64-bit product, consistent with most
// RISC ISAs. C and V are architecturally unpredictable for multiply and are
// fixed at 0.
func Mul(a, b Word) (result Word, flags Flags) {
	result = Word(uint64(a) * uint64(b))

	if result == 0 {
		flags.Z = 1
	}
	flags.N = uint8((result >> 31) & 1)

	return
}

// Div computes unsigned integer division. The caller must verify b != 0
// before calling; the ALU itself performs no zero check. C and V are fixed
// at 0 as for Mul.
func Div(a, b Word) (result Word, flags Flags) {
	result = a / b

	if result == 0 {
		flags.Z = 1
	}
	flags.N = uint8((result >> 31) & 1)

	return
}
