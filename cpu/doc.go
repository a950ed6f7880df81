// Package cpu implements the fetch-decode-execute loop of the machine.
//
// The CPU holds a 32-slot register file of 32-bit words, the condition
// flags from the last ALU-touching operation, and a program counter. All
// arithmetic flows through the alu package; LOAD and STORE go through an
// attached mem.Memory, which is optional for programs that never touch
// memory. Every run starts from a freshly zeroed CPU and either halts
// normally when the program counter walks off the end of the program, or
// aborts at the first validation or runtime error.
package cpu
