// Package asm implements a single-pass assembler for the register-machine
// instruction set.
//
// The source form is line oriented: one instruction per line, `;` starts a
// comment, `label:` marks a jump target, `.equ NAME VALUE` defines a
// symbolic constant, and `$( ... )` evaluates a Starlark expression over
// the equates at assembly time. Jump targets may be labels or absolute
// instruction indexes; labels are resolved in a link pass after the whole
// input has been read.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/codeyaruj/math-sim/cpu"
	"github.com/codeyaruj/math-sim/internal"
	"github.com/codeyaruj/math-sim/ir"
	"github.com/codeyaruj/math-sim/mem"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

func init() {
	defines := internal.IterSeq2Concat(cpu.Defines(), mem.Defines())
	for key, value := range defines {
		sysEquate[key] = value
	}
}

// link is a jump instruction awaiting a label address.
type link struct {
	index int // instruction to patch
	label string
}

// Assembler is a single pass assembler producing machine programs.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction indexes.
	Equate    map[string]string // Map of equates.

	prog  *ir.Program
	links []link
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// regOf returns the register index of a word such as "r4".
func (asm *Assembler) regOf(word string) (reg int, err error) {
	if len(word) < 2 || word[0] != 'r' {
		err = ErrRegisterInvalid
		return
	}

	reg, err = strconv.Atoi(word[1:])
	if err != nil || reg < 0 || reg >= cpu.MAX_REGS {
		err = ErrRegisterInvalid
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

// parseLine expands one line into bare instruction words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.prog.Len()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// binaryMap maps two-register mnemonics.
var binaryMap = map[string]ir.Opcode{
	"add": ir.ADD,
	"sub": ir.SUB,
	"mul": ir.MUL,
	"div": ir.DIV,
	"cmp": ir.CMP,
}

// jumpMap maps jump mnemonics.
var jumpMap = map[string]ir.Opcode{
	"jmp": ir.JMP,
	"jz":  ir.JZ,
	"jnz": ir.JNZ,
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	if op, ok := binaryMap[words[0]]; ok {
		if len(words) < 3 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}

		var dst, src int
		if dst, err = asm.regOf(words[1]); err != nil {
			return
		}
		if src, err = asm.regOf(words[2]); err != nil {
			return
		}

		asm.prog.Append(ir.Instr{Op: op, Dst: dst, Src: src})
		return
	}

	if op, ok := jumpMap[words[0]]; ok {
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}

		target, nerr := strconv.Atoi(words[1])
		if nerr != nil {
			// Not a number; leave the target for the link pass.
			asm.links = append(asm.links, link{index: asm.prog.Len(), label: words[1]})
		} else if target < 0 {
			err = ErrTargetInvalid
			return
		}

		asm.prog.Append(ir.Instr{Op: op, Target: target})
		return
	}

	switch words[0] {
	case "loadc":
		if len(words) < 3 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}

		var dst int
		var imm int64
		if dst, err = asm.regOf(words[1]); err != nil {
			return
		}
		if imm, err = asm.valueOf(words[2]); err != nil {
			return
		}

		asm.prog.Append(ir.Instr{Op: ir.LOAD_CONST, Dst: dst, Imm: imm})

	case "load":
		if len(words) < 3 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}

		var dst, addr int
		if dst, err = asm.regOf(words[1]); err != nil {
			return
		}
		if addr, err = asm.regOf(words[2]); err != nil {
			return
		}

		asm.prog.Append(ir.Instr{Op: ir.LOAD, Dst: dst, Addr: addr})

	case "store":
		if len(words) < 3 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}

		var src, addr int
		if src, err = asm.regOf(words[1]); err != nil {
			return
		}
		if addr, err = asm.regOf(words[2]); err != nil {
			return
		}

		asm.prog.Append(ir.Instr{Op: ir.STORE, Src: src, Addr: addr})

	default:
		err = ErrInstructionInvalid
	}

	return
}

// Parse assembles an input stream into an executable program.
func (asm *Assembler) Parse(input io.Reader) (prog *ir.Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.prog = ir.NewProgram()
	asm.links = asm.links[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words)
		if err != nil {
			return
		}
	}

	// Final linking of jump labels.
	for _, lk := range asm.links {
		target, ok := asm.Label[lk.label]
		if !ok {
			err = ErrLabelMissing(lk.label)
			return
		}
		asm.prog.Patch(lk.index, target)
	}

	prog = asm.prog

	return
}
