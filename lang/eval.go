package lang

import (
	"fmt"
	"io"
)

// Evaluator walks the AST directly and computes over int64, independent
// of the compiled pipeline. It is the reference used to cross-check the
// CPU's 32-bit result.
type Evaluator struct {
	Trace io.Writer // If set, receives one line per binary node resolved.
}

// Eval evaluates the subtree rooted at n. Children are evaluated before
// their operator, so trace lines appear in post-order, matching the
// instruction order the code generator emits.
func (ev *Evaluator) Eval(n *Node) (value int64, err error) {
	if n == nil {
		err = ErrNilNode
		return
	}

	switch n.Type {
	case NODE_NUMBER:
		value = n.Value

	case NODE_BINARY_OP:
		var lhs, rhs int64
		lhs, err = ev.Eval(n.Left)
		if err != nil {
			return
		}
		rhs, err = ev.Eval(n.Right)
		if err != nil {
			return
		}

		switch n.Op {
		case OP_ADD:
			value = lhs + rhs
		case OP_SUB:
			value = lhs - rhs
		case OP_MUL:
			value = lhs * rhs
		case OP_DIV:
			if rhs == 0 {
				err = ErrDivideByZero
				return
			}
			value = lhs / rhs
		default:
			err = ErrUnknownOperator
			return
		}

		if ev.Trace != nil {
			fmt.Fprintf(ev.Trace, "%v %d %d -> %d\n", n.Op, lhs, rhs, value)
		}

	default:
		err = ErrUnknownNode
	}

	return
}
