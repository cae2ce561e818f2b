// Package cpu implements the register machine the usdb monitor debugs,
// together with its assembler.
//
// The machine is a 32-bit word machine with an instruction pointer (ip)
// and six general-purpose registers (r0-r5). Instructions are ALU
// operations targeting a register or the instruction pointer, a
// conditional skip of the following instruction, and an output write.
// Execution halts when the instruction pointer leaves the program.
//
// The assembler is a single pass over line-oriented source, supporting
// labels, equates, and compile-time $(...) expression evaluation.
package cpu
