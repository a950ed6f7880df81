// Package ir holds the register-machine instruction representation.
//
// It sits between the expression AST and the CPU. Virtual registers are
// plain integers, unlimited here; the CPU caps them at its register file
// size during execution. No validation happens at append time so that
// hand-built programs (manual control-flow tests) stay expressible.
package ir

import (
	"fmt"
)

// Opcode is the closed instruction set of the machine.
type Opcode int

//go:generate go tool stringer -type=Opcode
const (
	// Arithmetic.
	LOAD_CONST = Opcode(iota) // R[dst] = imm
	ADD                       // R[dst] = R[dst] + R[src]
	SUB                       // R[dst] = R[dst] - R[src]
	MUL                       // R[dst] = R[dst] * R[src]
	DIV                       // R[dst] = R[dst] / R[src]

	// Comparison and control flow.
	CMP // flags = R[dst] - R[src], result discarded
	JMP // PC = target
	JZ  // if Z: PC = target
	JNZ // if !Z: PC = target

	// Memory access.
	LOAD  // R[dst] = MEM[R[addr]]
	STORE // MEM[R[addr]] = R[src]
)

// Instr is a single fixed-shape instruction. Fields unused by an opcode
// are left at their zero value so instructions stay comparable and
// printable regardless of shape.
type Instr struct {
	Op     Opcode
	Dst    int   // destination register (arithmetic / LOAD)
	Src    int   // source register (arithmetic / CMP / STORE)
	Imm    int64 // immediate value (LOAD_CONST only)
	Target int   // jump destination PC (JMP/JZ/JNZ only)
	Addr   int   // register holding the memory address (LOAD/STORE only)
}

// String returns the dump form of the instruction.
func (in Instr) String() (out string) {
	switch in.Op {
	case LOAD_CONST:
		out = fmt.Sprintf("%-12s R%d, %d", in.Op, in.Dst, in.Imm)
	case JMP, JZ, JNZ:
		out = fmt.Sprintf("%-12s %d", in.Op, in.Target)
	case LOAD:
		out = fmt.Sprintf("%-12s R%d, [R%d]", in.Op, in.Dst, in.Addr)
	case STORE:
		out = fmt.Sprintf("%-12s R%d, [R%d]", in.Op, in.Src, in.Addr)
	default:
		out = fmt.Sprintf("%-12s R%d, R%d", in.Op, in.Dst, in.Src)
	}

	return
}
