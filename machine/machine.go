// Package machine wires the full expression pipeline together.
//
// Run takes one source expression through lexing, parsing, the reference
// tree-walking evaluator, compilation to machine instructions, and a CPU
// run, then cross-checks both results at the 32-bit level. The two paths
// compute independently, so agreement is meaningful: a mismatch is a
// compiler bug, never a property of the input.
package machine

import (
	"io"
	"iter"
	"log"
	"strings"

	"github.com/codeyaruj/math-sim/codegen"
	"github.com/codeyaruj/math-sim/cpu"
	"github.com/codeyaruj/math-sim/internal"
	"github.com/codeyaruj/math-sim/ir"
	"github.com/codeyaruj/math-sim/lang"
	"github.com/codeyaruj/math-sim/mem"
)

// Machine state. Front end + codegen + CPU.
type Machine struct {
	Verbose bool      // If set, enables verbose logging.
	Trace   io.Writer // Evaluation trace destination; may be nil.

	Mem *mem.Memory // RAM; may be nil for pure expressions.

	Ast  *lang.Node  // AST of the last compiled expression.
	Prog *ir.Program // Instructions of the last compiled expression.
}

// New creates a machine without RAM attached.
func New() (mch *Machine) {
	mch = &Machine{}

	return
}

// Defines returns an iterator over all of the defines
func (mch *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(cpu.Defines(), mem.Defines())
}

// Compile runs the front end only: lex, parse, and lower to instructions.
// The AST and program are retained on the machine for inspection.
func (mch *Machine) Compile(src string) (prog *ir.Program, err error) {
	src = strings.TrimSpace(src)
	if len(src) == 0 {
		err = ErrEmptyInput
		return
	}

	root, err := lang.NewParser(lang.NewLexer(src)).Parse()
	if err != nil {
		return
	}
	mch.Ast = root

	prog = ir.NewProgram()
	_, err = codegen.New(prog).Expr(root)
	if err != nil {
		return
	}
	mch.Prog = prog

	if mch.Verbose {
		log.Printf("machine: compiled %q to %d instructions", src, prog.Len())
	}

	return
}

// Run executes src end to end and returns the final value.
//
// The expression is evaluated twice: once by the tree-walking evaluator
// (tracing to Trace if set) and once compiled on the CPU. Both 32-bit
// patterns must agree.
func (mch *Machine) Run(src string) (result int64, err error) {
	prog, err := mch.Compile(src)
	if err != nil {
		return
	}

	ev := &lang.Evaluator{Trace: mch.Trace}
	expected, err := ev.Eval(mch.Ast)
	if err != nil {
		return
	}

	c := cpu.New(mch.Mem)
	c.Verbose = mch.Verbose
	result, err = c.Run(prog)
	if err != nil {
		return
	}

	if uint32(result) != uint32(expected) {
		err = &ErrCrossCheck{Eval: expected, Cpu: result}
		return
	}

	return
}
