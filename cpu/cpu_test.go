package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeyaruj/math-sim/alu"
	"github.com/codeyaruj/math-sim/ir"
	"github.com/codeyaruj/math-sim/mem"
)

// build appends the given instructions into a fresh program.
func build(instrs ...ir.Instr) (prog *ir.Program) {
	prog = ir.NewProgram()
	for _, in := range instrs {
		prog.Append(in)
	}

	return
}

func TestEmptyProgram(t *testing.T) {
	assert := assert.New(t)

	_, err := Execute(ir.NewProgram(), nil)
	assert.ErrorIs(err, ErrEmptyProgram)

	_, err = Execute(nil, nil)
	assert.ErrorIs(err, ErrEmptyProgram)
}

func TestArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     ir.Opcode
		a, b   int64
		result int64
	}){
		{"add", ir.ADD, 3, 4, 7},
		{"sub", ir.SUB, 10, 4, 6},
		{"sub_negative", ir.SUB, 4, 10, -6},
		{"mul", ir.MUL, 6, 7, 42},
		{"div", ir.DIV, 42, 6, 7},
		{"div_truncating", ir.DIV, 7, 2, 3},
	}

	for _, entry := range table {
		prog := build(
			ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: entry.a},
			ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: entry.b},
			ir.Instr{Op: entry.op, Dst: 0, Src: 1},
		)

		result, err := Execute(prog, nil)
		assert.NoError(err, entry.name)
		assert.Equal(entry.result, result, entry.name)
	}
}

func TestBranchEqualPath(t *testing.T) {
	assert := assert.New(t)

	// R1 = 3; R2 = 3; CMP; JZ equal; R3 = 99; JMP end; equal: R3 = 42
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 3},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 2, Imm: 3},
		ir.Instr{Op: ir.CMP, Dst: 1, Src: 2},
		ir.Instr{Op: ir.JZ, Target: 6},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 3, Imm: 99},
		ir.Instr{Op: ir.JMP, Target: 7},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 3, Imm: 42},
	)

	result, err := Execute(prog, nil)
	assert.NoError(err)
	assert.Equal(int64(42), result)
}

func TestBranchNotEqualPath(t *testing.T) {
	assert := assert.New(t)

	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 3},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 2, Imm: 5},
		ir.Instr{Op: ir.CMP, Dst: 1, Src: 2},
		ir.Instr{Op: ir.JZ, Target: 6},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 3, Imm: 99},
		ir.Instr{Op: ir.JMP, Target: 7},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 3, Imm: 42},
	)

	result, err := Execute(prog, nil)
	assert.NoError(err)
	assert.Equal(int64(99), result)
}

func TestCountdownLoop(t *testing.T) {
	assert := assert.New(t)

	// R0 = 5; R1 = 1; loop: SUB R0, R1; JNZ loop
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 5},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 1},
		ir.Instr{Op: ir.SUB, Dst: 0, Src: 1},
		ir.Instr{Op: ir.JNZ, Target: 2},
	)

	c := New(nil)
	result, err := c.Run(prog)
	assert.NoError(err)
	assert.Equal(int64(0), result)
	assert.Equal(alu.Word(0), c.Regs[0])
	assert.Equal(uint8(1), c.Flags.Z)
}

func TestStepLimit(t *testing.T) {
	assert := assert.New(t)

	// Unconditional self-jump never terminates.
	prog := build(ir.Instr{Op: ir.JMP, Target: 0})

	_, err := Execute(prog, nil)
	assert.ErrorIs(err, ErrStepLimit)

	var ctx *Error
	assert.True(errors.As(err, &ctx))
	assert.Equal(0, ctx.Pc)
}

func TestRegisterOutOfRange(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		in   ir.Instr
	}){
		{"loadc_high", ir.Instr{Op: ir.LOAD_CONST, Dst: MAX_REGS, Imm: 1}},
		{"loadc_negative", ir.Instr{Op: ir.LOAD_CONST, Dst: -1, Imm: 1}},
		{"add_src", ir.Instr{Op: ir.ADD, Dst: 0, Src: 99}},
		{"cmp_dst", ir.Instr{Op: ir.CMP, Dst: 40, Src: 0}},
		{"load_addr", ir.Instr{Op: ir.LOAD, Dst: 0, Addr: 32}},
		{"store_src", ir.Instr{Op: ir.STORE, Src: -2, Addr: 0}},
	}

	for _, entry := range table {
		_, err := Execute(build(entry.in), mem.New())
		assert.ErrorIs(err, ErrRegisterRange, entry.name)
	}
}

func TestJumpTargetBounds(t *testing.T) {
	assert := assert.New(t)

	// Program length is a legal target: it means halt.
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 1},
		ir.Instr{Op: ir.JMP, Target: 2},
	)
	result, err := Execute(prog, nil)
	assert.NoError(err)
	assert.Equal(int64(1), result)

	// One past the length is not.
	_, err = Execute(build(ir.Instr{Op: ir.JMP, Target: 2}), nil)
	assert.ErrorIs(err, ErrJumpTarget)

	_, err = Execute(build(ir.Instr{Op: ir.JMP, Target: -1}), nil)
	assert.ErrorIs(err, ErrJumpTarget)
}

func TestConditionalJumpNotTakenSkipsTargetCheck(t *testing.T) {
	assert := assert.New(t)

	// CMP 1, 2 clears Z, so the bogus JZ target is never validated.
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 1},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 2},
		ir.Instr{Op: ir.CMP, Dst: 0, Src: 1},
		ir.Instr{Op: ir.JZ, Target: 999},
	)

	result, err := Execute(prog, nil)
	assert.NoError(err)
	assert.Equal(int64(2), result)
}

func TestDivisionByZero(t *testing.T) {
	assert := assert.New(t)

	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 7},
		ir.Instr{Op: ir.DIV, Dst: 0, Src: 1},
	)

	_, err := Execute(prog, nil)
	assert.ErrorIs(err, ErrDivideByZero)

	var ctx *Error
	assert.True(errors.As(err, &ctx))
	assert.Equal(1, ctx.Pc)
}

func TestLoadStoreRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// MEM[0x200] = 0xDEADBEEF; R2 = MEM[0x200]
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 0x200},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 0xDEADBEEF},
		ir.Instr{Op: ir.STORE, Src: 1, Addr: 0},
		ir.Instr{Op: ir.LOAD, Dst: 2, Addr: 0},
	)

	m := mem.New()
	c := New(m)
	result, err := c.Run(prog)
	assert.NoError(err)
	assert.Equal(alu.Word(0xdeadbeef), c.Regs[2])
	// Sign-extended: bit 31 of 0xDEADBEEF is set.
	assert.Equal(int64(int32(-559038737)), result)

	value, err := m.ReadWord(0x200)
	assert.NoError(err)
	assert.Equal(alu.Word(0xdeadbeef), value)
}

func TestMemoryNotAttached(t *testing.T) {
	assert := assert.New(t)

	load := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 0x100},
		ir.Instr{Op: ir.LOAD, Dst: 1, Addr: 0},
	)
	_, err := Execute(load, nil)
	assert.ErrorIs(err, ErrNoMemory)

	store := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 0x100},
		ir.Instr{Op: ir.STORE, Src: 0, Addr: 0},
	)
	_, err = Execute(store, nil)
	assert.ErrorIs(err, ErrNoMemory)
}

func TestMemoryErrorsPropagate(t *testing.T) {
	assert := assert.New(t)

	unaligned := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 0x102},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 7},
		ir.Instr{Op: ir.STORE, Src: 1, Addr: 0},
	)
	_, err := Execute(unaligned, mem.New())
	assert.ErrorIs(err, mem.ErrUnaligned)

	var ctx *Error
	assert.True(errors.As(err, &ctx))
	assert.Equal(2, ctx.Pc)

	bounds := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 0x10000},
		ir.Instr{Op: ir.LOAD, Dst: 1, Addr: 0},
	)
	_, err = Execute(bounds, mem.New())
	assert.ErrorIs(err, mem.ErrBounds)
}

func TestLoadConstTruncatesTo32Bits(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		imm    int64
		reg    alu.Word
		result int64
	}){
		{"negative", -1, 0xffffffff, -1},
		{"wide_positive", 0x1_0000_0002, 2, 2},
		{"msb_set", 0x80000000, 0x80000000, -2147483648},
		{"wide_negative", -4294967296, 0, 0},
	}

	for _, entry := range table {
		c := New(nil)
		result, err := c.Run(build(ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: entry.imm}))
		assert.NoError(err, entry.name)
		assert.Equal(entry.reg, c.Regs[0], entry.name)
		assert.Equal(entry.result, result, entry.name)
	}
}

func TestFlagsUntouchedByLoadStoreJump(t *testing.T) {
	assert := assert.New(t)

	// SUB leaves Z=1; everything after must not disturb the flags.
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 3},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 3},
		ir.Instr{Op: ir.SUB, Dst: 0, Src: 1},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 2, Imm: 0x100},
		ir.Instr{Op: ir.STORE, Src: 1, Addr: 2},
		ir.Instr{Op: ir.LOAD, Dst: 3, Addr: 2},
		ir.Instr{Op: ir.JMP, Target: 7},
	)

	c := New(mem.New())
	_, err := c.Run(prog)
	assert.NoError(err)
	assert.Equal(uint8(1), c.Flags.Z)
	assert.Equal(uint8(1), c.Flags.C)
}

func TestLastWrittenTracking(t *testing.T) {
	assert := assert.New(t)

	// The final CMP and STORE do not move the result away from R1.
	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 0x100},
		ir.Instr{Op: ir.LOAD_CONST, Dst: 1, Imm: 42},
		ir.Instr{Op: ir.CMP, Dst: 0, Src: 1},
		ir.Instr{Op: ir.STORE, Src: 1, Addr: 0},
	)

	result, err := Execute(prog, mem.New())
	assert.NoError(err)
	assert.Equal(int64(42), result)
}

func TestUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	_, err := Execute(build(ir.Instr{Op: ir.Opcode(42)}), nil)
	assert.ErrorIs(err, ErrUnknownOpcode)
}

func TestErrorStringCarriesPc(t *testing.T) {
	assert := assert.New(t)

	prog := build(
		ir.Instr{Op: ir.LOAD_CONST, Dst: 0, Imm: 1},
		ir.Instr{Op: ir.ADD, Dst: 0, Src: 77},
	)

	_, err := Execute(prog, nil)
	assert.Error(err)
	assert.Contains(err.Error(), "pc=1")
}
