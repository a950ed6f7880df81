package ir

import (
	"fmt"
	"io"
	"iter"
)

// INITIAL_CAPACITY covers most real expressions without a regrow.
const INITIAL_CAPACITY = 16

// Program is an ordered, append-only instruction sequence indexed by
// program-counter position. Whoever builds it owns it; the CPU only reads.
type Program struct {
	instrs []Instr
	count  int
}

// NewProgram creates an empty program with the initial backing capacity.
func NewProgram() (prog *Program) {
	prog = &Program{
		instrs: make([]Instr, INITIAL_CAPACITY),
	}

	return
}

// Append adds one instruction at the end, doubling the backing storage
// when full. No validation happens here; it is deferred to execution.
func (prog *Program) Append(in Instr) {
	if prog.count == len(prog.instrs) {
		grown := make([]Instr, len(prog.instrs)*2)
		copy(grown, prog.instrs)
		prog.instrs = grown
	}
	prog.instrs[prog.count] = in
	prog.count++
}

// Len returns the number of appended instructions.
func (prog *Program) Len() int {
	return prog.count
}

// At returns the instruction at program-counter position pc.
func (prog *Program) At(pc int) Instr {
	return prog.instrs[pc]
}

// Patch rewrites the jump target of the instruction at pc. Assemblers use
// it to resolve forward label references after the full input is read.
func (prog *Program) Patch(pc int, target int) {
	prog.instrs[pc].Target = target
}

// Instructions iterates over (pc, instruction) pairs in program order.
func (prog *Program) Instructions() iter.Seq2[int, Instr] {
	return func(yield func(pc int, in Instr) bool) {
		for pc := 0; pc < prog.count; pc++ {
			if !yield(pc, prog.instrs[pc]) {
				return
			}
		}
	}
}

// Dump writes a listing of the program to w, one instruction per line.
func (prog *Program) Dump(w io.Writer) {
	for pc, in := range prog.Instructions() {
		fmt.Fprintf(w, "  %2d  %v\n", pc, in)
	}
}
