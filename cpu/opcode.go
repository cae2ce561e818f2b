package cpu

import (
	"fmt"
)

// InstClass is the instruction class.
type InstClass int

//go:generate go tool stringer -linecomment -type=InstClass
const (
	OP_ALU = InstClass(0) // alu
	OP_IF  = InstClass(1) // if
	OP_OUT = InstClass(2) // out
)

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_SET = AluOp(0) // set
	ALU_OP_XOR = AluOp(1) // xor
	ALU_OP_AND = AluOp(2) // and
	ALU_OP_OR  = AluOp(3) // or
	ALU_OP_SHL = AluOp(4) // shl
	ALU_OP_SHR = AluOp(5) // shr
	ALU_OP_ADD = AluOp(6) // add
	ALU_OP_SUB = AluOp(7) // sub
)

// CondOp is a conditional skip comparison type.
type CondOp int

//go:generate go tool stringer -linecomment -type=CondOp
const (
	COND_OP_EQ = CondOp(0) // eq?
	COND_OP_NE = CondOp(1) // ne?
	COND_OP_LT = CondOp(2) // lt?
	COND_OP_LE = CondOp(3) // le?
)

// InstIR identifies a value source or target.
type InstIR int

//go:generate go tool stringer -linecomment -type=InstIR
const (
	IR_IMM    = InstIR(0) // imm
	IR_REG_R0 = InstIR(1) // r0
	IR_REG_R1 = InstIR(2) // r1
	IR_REG_R2 = InstIR(3) // r2
	IR_REG_R3 = InstIR(4) // r3
	IR_REG_R4 = InstIR(5) // r4
	IR_REG_R5 = InstIR(6) // r5
	IR_IP     = InstIR(7) // ip
)

// Src is an instruction source operand.
type Src struct {
	Ir  InstIR
	Imm uint32 // Immediate value when Ir == IR_IMM.
}

func (src Src) String() string {
	if src.Ir == IR_IMM {
		return fmt.Sprintf("%#x", src.Imm)
	}
	return src.Ir.String()
}

// Inst is a single decoded instruction.
type Inst struct {
	LineNo int // Source line that produced this instruction.

	Class InstClass
	Alu   AluOp  // ALU operation for OP_ALU.
	Cond  CondOp // Comparison for OP_IF.
	Dst   InstIR // ALU target register or ip.
	A     Src    // First source for OP_IF, the sole source otherwise.
	B     Src    // Second source for OP_IF.

	Label string // Unresolved jump label, linked by the assembler.
}

// String returns the assembly language representation of this instruction.
func (inst Inst) String() (out string) {
	switch inst.Class {
	case OP_ALU:
		out = fmt.Sprintf("%v %v %v", inst.Alu, inst.Dst, inst.A)
	case OP_IF:
		out = fmt.Sprintf("if %v %v %v", inst.Cond, inst.A, inst.B)
	case OP_OUT:
		out = fmt.Sprintf("out %v", inst.A)
	default:
		out = fmt.Sprintf("inst(%d)", int(inst.Class))
	}
	return
}
