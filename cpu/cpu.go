package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/codeyaruj/math-sim/alu"
	"github.com/codeyaruj/math-sim/ir"
	"github.com/codeyaruj/math-sim/mem"
)

const (
	MAX_REGS  = 32        // register file size
	MAX_STEPS = 1_000_000 // infinite-loop guard
)

var _cpu_defines = map[string]string{
	"CPU_MAX_REGS":  fmt.Sprintf("%v", MAX_REGS),
	"CPU_MAX_STEPS": fmt.Sprintf("%v", MAX_STEPS),
}

// Cpu is the execution state for one program run.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Regs  [MAX_REGS]alu.Word // Register file.
	Flags alu.Flags          // Flags from the last ALU-touching operation.
	Pc    int                // Program counter.
	Mem   *mem.Memory        // RAM; may be nil.
}

// New creates a zeroed CPU with the given memory attached. m may be nil
// for programs that perform no memory access.
func New(m *mem.Memory) (c *Cpu) {
	c = &Cpu{
		Mem: m,
	}

	return
}

// Defines for the cpu.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Execute runs prog on a fresh CPU backed by m and returns the value of
// the last-written register, sign-extended to 64 bits.
func Execute(prog *ir.Program, m *mem.Memory) (result int64, err error) {
	return New(m).Run(prog)
}

// String returns the register file and flags as a multi-line string.
func (c *Cpu) String() (text string) {
	for n := 0; n < MAX_REGS; n++ {
		text += fmt.Sprintf("R%-2d: 0x%08x\n", n, uint32(c.Regs[n]))
	}
	text += fmt.Sprintf("pc: %d  %v\n", c.Pc, c.Flags)

	return
}

// checkReg validates a register index against the register file size.
func (c *Cpu) checkReg(r int, in ir.Instr) (err error) {
	if r < 0 || r >= MAX_REGS {
		err = &Error{Pc: c.Pc, Instr: in, Err: ErrRegisterRange}
	}

	return
}

// checkTarget validates a jump target. target in [0, prog.Len()] is valid:
// the length itself jumps past the last instruction, which halts the run.
func (c *Cpu) checkTarget(target int, prog *ir.Program, in ir.Instr) (err error) {
	if target < 0 || target > prog.Len() {
		err = &Error{Pc: c.Pc, Instr: in, Err: ErrJumpTarget}
	}

	return
}

// Run executes prog to completion on this CPU.
//
// The loop fetches the instruction at Pc, dispatches it, and advances Pc
// unless the instruction wrote it directly. A per-run step counter guards
// against non-terminating programs. The result is the sign-extended value
// of the most recently written register; CMP, STORE, and jumps never
// update that tracking.
func (c *Cpu) Run(prog *ir.Program) (result int64, err error) {
	if prog == nil || prog.Len() == 0 {
		err = ErrEmptyProgram
		return
	}

	lastDst := 0
	steps := 0

	for c.Pc < prog.Len() {
		steps++
		if steps > MAX_STEPS {
			err = &Error{Pc: c.Pc, Err: ErrStepLimit}
			return
		}

		in := prog.At(c.Pc)
		jumped := false

		switch in.Op {
		case ir.LOAD_CONST:
			if err = c.checkReg(in.Dst, in); err != nil {
				return
			}
			// Truncate the wider immediate to its 32-bit pattern.
			c.Regs[in.Dst] = alu.Word(in.Imm)
			lastDst = in.Dst
			if c.Verbose {
				log.Printf("cpu: pc=%d R%d = %d", c.Pc, in.Dst, uint32(c.Regs[in.Dst]))
			}

		case ir.ADD, ir.SUB, ir.MUL, ir.DIV:
			if err = c.checkReg(in.Dst, in); err != nil {
				return
			}
			if err = c.checkReg(in.Src, in); err != nil {
				return
			}

			var res alu.Word
			switch in.Op {
			case ir.ADD:
				res, c.Flags = alu.Add(c.Regs[in.Dst], c.Regs[in.Src])
			case ir.SUB:
				res, c.Flags = alu.Sub(c.Regs[in.Dst], c.Regs[in.Src])
			case ir.MUL:
				res, c.Flags = alu.Mul(c.Regs[in.Dst], c.Regs[in.Src])
			case ir.DIV:
				// Zero check belongs to the CPU; the ALU divide is unguarded.
				if c.Regs[in.Src] == 0 {
					err = &Error{Pc: c.Pc, Instr: in, Err: ErrDivideByZero}
					return
				}
				res, c.Flags = alu.Div(c.Regs[in.Dst], c.Regs[in.Src])
			}
			c.Regs[in.Dst] = res
			lastDst = in.Dst
			if c.Verbose {
				log.Printf("cpu: pc=%d %v -> %d (%v)", c.Pc, in, uint32(res), c.Flags)
			}

		case ir.CMP:
			if err = c.checkReg(in.Dst, in); err != nil {
				return
			}
			if err = c.checkReg(in.Src, in); err != nil {
				return
			}
			// Subtract for the flag side effect only; no register is
			// written and lastDst stays put.
			_, c.Flags = alu.Sub(c.Regs[in.Dst], c.Regs[in.Src])
			if c.Verbose {
				log.Printf("cpu: pc=%d %v (%v)", c.Pc, in, c.Flags)
			}

		case ir.JMP:
			if err = c.checkTarget(in.Target, prog, in); err != nil {
				return
			}
			c.Pc = in.Target
			jumped = true
			if c.Verbose {
				log.Printf("cpu: pc=%d JMP -> %d", c.Pc, in.Target)
			}

		case ir.JZ, ir.JNZ:
			taken := c.Flags.Z == 1
			if in.Op == ir.JNZ {
				taken = !taken
			}
			if taken {
				if err = c.checkTarget(in.Target, prog, in); err != nil {
					return
				}
				c.Pc = in.Target
				jumped = true
			}
			if c.Verbose {
				log.Printf("cpu: pc=%d %v taken=%v", c.Pc, in, taken)
			}

		case ir.LOAD:
			if err = c.checkReg(in.Dst, in); err != nil {
				return
			}
			if err = c.checkReg(in.Addr, in); err != nil {
				return
			}
			if c.Mem == nil {
				err = &Error{Pc: c.Pc, Instr: in, Err: ErrNoMemory}
				return
			}

			addr := uint32(c.Regs[in.Addr])
			var value alu.Word
			value, err = c.Mem.ReadWord(addr)
			if err != nil {
				err = &Error{Pc: c.Pc, Instr: in, Err: err}
				return
			}
			c.Regs[in.Dst] = value
			lastDst = in.Dst
			if c.Verbose {
				log.Printf("cpu: pc=%d LOAD R%d <- MEM[0x%04x] -> %d", c.Pc, in.Dst, addr, uint32(value))
			}

		case ir.STORE:
			if err = c.checkReg(in.Src, in); err != nil {
				return
			}
			if err = c.checkReg(in.Addr, in); err != nil {
				return
			}
			if c.Mem == nil {
				err = &Error{Pc: c.Pc, Instr: in, Err: ErrNoMemory}
				return
			}

			addr := uint32(c.Regs[in.Addr])
			err = c.Mem.WriteWord(addr, c.Regs[in.Src])
			if err != nil {
				err = &Error{Pc: c.Pc, Instr: in, Err: err}
				return
			}
			if c.Verbose {
				log.Printf("cpu: pc=%d STORE MEM[0x%04x] <- R%d (%d)", c.Pc, addr, in.Src, uint32(c.Regs[in.Src]))
			}

		default:
			err = &Error{Pc: c.Pc, Instr: in, Err: ErrUnknownOpcode}
			return
		}

		if !jumped {
			c.Pc++
		}
	}

	// Sign-extend the 32-bit pattern of the last-written register.
	result = int64(int32(c.Regs[lastDst]))

	return
}
