package cpu

import (
	"iter"
)

// Program is an assembled instruction listing.
type Program struct {
	Insts []Inst
}

// LineNo returns the source line for an instruction address, or 0 when
// the address is outside the program.
func (prog *Program) LineNo(ip uint32) int {
	if int(ip) < len(prog.Insts) {
		return prog.Insts[ip].LineNo
	}
	return 0
}

// Codes iterates the program's instructions with their addresses.
func (prog *Program) Codes() iter.Seq2[uint32, Inst] {
	return func(yield func(ip uint32, inst Inst) bool) {
		for n, inst := range prog.Insts {
			if !yield(uint32(n), inst) {
				return
			}
		}
	}
}
