// Package mem implements the flat 64 KB RAM of the machine.
//
// All programmer-visible access is 32-bit word-width and must be 4-byte
// aligned; violations are errors, never partial transfers. Words are stored
// little-endian. A Memory is owned by whoever constructs it; the CPU only
// holds a reference and may run without one.
package mem

import (
	"fmt"
	"iter"
	"maps"

	"github.com/codeyaruj/math-sim/alu"
)

const (
	SIZE      = 64 * 1024 // 64 KB address space
	WORD_SIZE = 4         // 32-bit word = 4 bytes
)

var _mem_defines = map[string]string{
	"MEM_SIZE":      fmt.Sprintf("%#x", SIZE),
	"MEM_WORD_SIZE": fmt.Sprintf("%v", WORD_SIZE),
}

// Memory is a fixed-size flat byte array.
type Memory struct {
	data [SIZE]byte
}

// New creates a zero-filled Memory.
func New() (m *Memory) {
	m = &Memory{}

	return
}

// Defines for the memory subsystem.
func Defines() iter.Seq2[string, string] {
	return maps.All(_mem_defines)
}

// Reset zero-fills the entire region.
func (m *Memory) Reset() {
	clear(m.data[:])
}

// checkAccess validates a word access at addr: 4-byte alignment and full
// containment within the region. The bounds comparison is written so it
// cannot overflow when addr is near the top of the 32-bit range.
func (m *Memory) checkAccess(addr uint32, op string) (err error) {
	if addr%WORD_SIZE != 0 {
		err = &ErrAccess{Op: op, Addr: addr, Err: ErrUnaligned}
		return
	}
	if addr > SIZE-WORD_SIZE {
		err = &ErrAccess{Op: op, Addr: addr, Err: ErrBounds}
		return
	}

	return
}

// ReadWord loads the 32-bit word at addr, assembling four little-endian
// bytes. The read never happens if validation fails.
func (m *Memory) ReadWord(addr uint32) (value alu.Word, err error) {
	err = m.checkAccess(addr, "read")
	if err != nil {
		return
	}

	value = alu.Word(m.data[addr]) |
		alu.Word(m.data[addr+1])<<8 |
		alu.Word(m.data[addr+2])<<16 |
		alu.Word(m.data[addr+3])<<24

	return
}

// WriteWord stores the 32-bit word at addr, decomposing it into four
// little-endian bytes. The write never happens if validation fails.
func (m *Memory) WriteWord(addr uint32, value alu.Word) (err error) {
	err = m.checkAccess(addr, "write")
	if err != nil {
		return
	}

	m.data[addr] = byte(value)
	m.data[addr+1] = byte(value >> 8)
	m.data[addr+2] = byte(value >> 16)
	m.data[addr+3] = byte(value >> 24)

	return
}
