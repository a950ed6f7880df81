// Package codegen lowers an expression AST into register-machine
// instructions.
//
// The walk is post-order: both operand subtrees are compiled before the
// operator that consumes them, so operand values are already sitting in
// registers when the operator instruction executes. Every number leaf
// gets a fresh register and registers are never reused; exhausting the
// register file is the CPU's range check to report, not ours.
package codegen

import (
	"github.com/codeyaruj/math-sim/ir"
	"github.com/codeyaruj/math-sim/lang"
)

// Codegen appends instructions for one expression tree to a program.
type Codegen struct {
	prog    *ir.Program
	nextReg int
}

// New creates a generator emitting into prog. Register numbering starts
// at zero.
func New(prog *ir.Program) (cg *Codegen) {
	cg = &Codegen{
		prog: prog,
	}

	return
}

func (cg *Codegen) allocReg() (reg int) {
	reg = cg.nextReg
	cg.nextReg++

	return
}

func opcodeFor(op lang.BinaryOp) (code ir.Opcode, err error) {
	switch op {
	case lang.OP_ADD:
		code = ir.ADD
	case lang.OP_SUB:
		code = ir.SUB
	case lang.OP_MUL:
		code = ir.MUL
	case lang.OP_DIV:
		code = ir.DIV
	default:
		err = ErrUnknownOperator
	}

	return
}

// Expr compiles the subtree rooted at node and returns the register that
// holds its value once the emitted instructions have run.
//
// Binary nodes follow the two-address convention: the left operand's
// register doubles as the destination, so the emitted instruction is
// OP left, right and the left register carries the result out.
func (cg *Codegen) Expr(node *lang.Node) (reg int, err error) {
	if node == nil {
		err = ErrNilNode
		return
	}

	switch node.Type {
	case lang.NODE_NUMBER:
		reg = cg.allocReg()
		cg.prog.Append(ir.Instr{
			Op:  ir.LOAD_CONST,
			Dst: reg,
			Imm: node.Value,
		})

	case lang.NODE_BINARY_OP:
		var left, right int

		left, err = cg.Expr(node.Left)
		if err != nil {
			return
		}

		right, err = cg.Expr(node.Right)
		if err != nil {
			return
		}

		var code ir.Opcode

		code, err = opcodeFor(node.Op)
		if err != nil {
			return
		}

		cg.prog.Append(ir.Instr{
			Op:  code,
			Dst: left,
			Src: right,
		})

		reg = left

	default:
		err = ErrUnknownNode
	}

	return
}
