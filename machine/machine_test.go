package machine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeyaruj/math-sim/cpu"
	"github.com/codeyaruj/math-sim/lang"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		src   string
		value int64
	}){
		{"number", "42", 42},
		{"add", "3 + 4", 7},
		{"precedence", "1 + 2 * 3", 7},
		{"parens", "(1 + 2) * 3", 9},
		{"whitespace", "  7 * 6  ", 42},
		{"chain", "100 - 10 - 10 - 10", 70},
	}

	mch := New()
	for _, entry := range table {
		result, err := mch.Run(entry.src)
		assert.NoError(err, entry.name)
		assert.Equal(entry.value, result, entry.name)
	}
}

func TestRunEmptyInput(t *testing.T) {
	assert := assert.New(t)

	_, err := New().Run("   ")
	assert.ErrorIs(err, ErrEmptyInput)
}

func TestRunParseError(t *testing.T) {
	assert := assert.New(t)

	_, err := New().Run("1 + ")
	assert.ErrorIs(err, lang.ErrExpectedFactor)
}

func TestRunDivideByZero(t *testing.T) {
	assert := assert.New(t)

	// The evaluator catches it before the CPU ever runs.
	_, err := New().Run("9 / (3 - 3)")
	assert.ErrorIs(err, lang.ErrDivideByZero)
}

func TestRunTrace(t *testing.T) {
	assert := assert.New(t)

	var sb strings.Builder
	mch := New()
	mch.Trace = &sb

	result, err := mch.Run("3 + 4")
	assert.NoError(err)
	assert.Equal(int64(7), result)
	assert.Equal("ADD 3 4 -> 7\n", sb.String())
}

func TestRunRetainsArtifacts(t *testing.T) {
	assert := assert.New(t)

	mch := New()
	_, err := mch.Run("1 + 2")
	assert.NoError(err)

	assert.NotNil(mch.Ast)
	assert.Equal(lang.NODE_BINARY_OP, mch.Ast.Type)
	assert.Equal(3, mch.Prog.Len())
}

func TestRunWideValuesAgree(t *testing.T) {
	assert := assert.New(t)

	// Products past 32 bits wrap identically on both paths, so the
	// cross-check passes and the result carries the wrapped pattern.
	mch := New()
	result, err := mch.Run("65536 * 65536 + 1")
	assert.NoError(err)
	assert.Equal(int64(1), result)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range New().Defines() {
		defines[key] = value
	}

	assert.Equal("0x10000", defines["MEM_SIZE"])
	assert.Contains(defines, "CPU_MAX_REGS")
}

func TestCrossCheckError(t *testing.T) {
	assert := assert.New(t)

	err := &ErrCrossCheck{Eval: 7, Cpu: 8}
	assert.Contains(err.Error(), "disagree")
}

func TestCompileOnly(t *testing.T) {
	assert := assert.New(t)

	mch := New()
	prog, err := mch.Compile("2 * 3")
	assert.NoError(err)
	assert.Equal(3, prog.Len())

	// Nothing ran yet; executing the program afterwards works.
	result, err := cpu.Execute(prog, nil)
	assert.NoError(err)
	assert.Equal(int64(6), result)
}
