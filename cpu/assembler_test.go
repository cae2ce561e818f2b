package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doParse(t *testing.T, program ...string) *Program {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	return prog
}

func TestAssembler_Alu(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t,
		"set r0 5",
		"add r0 r1",
		"sub r2 0x10",
	)

	assert.Len(prog.Insts, 3)
	assert.Equal(aluInst(ALU_OP_SET, IR_REG_R0, imm(5)), withoutLineNo(prog.Insts[0]))
	assert.Equal(aluInst(ALU_OP_ADD, IR_REG_R0, reg(IR_REG_R1)), withoutLineNo(prog.Insts[1]))
	assert.Equal(aluInst(ALU_OP_SUB, IR_REG_R2, imm(0x10)), withoutLineNo(prog.Insts[2]))
	assert.Equal(2, prog.Insts[1].LineNo)
}

func withoutLineNo(inst Inst) Inst {
	inst.LineNo = 0
	return inst
}

func TestAssembler_Comments(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t,
		"; a full-line comment",
		"",
		"set r0 1 ; a trailing comment",
	)

	assert.Len(prog.Insts, 1)
	assert.Equal(3, prog.Insts[0].LineNo)
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t,
		".equ LIMIT 10",
		"set r0 LIMIT",
	)

	assert.Len(prog.Insts, 1)
	assert.Equal(imm(10), prog.Insts[0].A)
}

func TestAssembler_EquateDuplicate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".equ A 1\n.equ A 2\n"))
	assert.ErrorIs(err, ErrEquateDuplicate)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(2, syntax.LineNo)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("WIDTH", "4")

	prog, err := asm.Parse(strings.NewReader("set r0 WIDTH\n"))
	assert.NoError(err)
	assert.Equal(imm(4), prog.Insts[0].A)
}

func TestAssembler_ParenEval(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t,
		".equ WIDTH 4",
		"set r0 $(2 + 3 * WIDTH)",
		"set r1 $(1 << 8)",
	)

	assert.Equal(imm(14), prog.Insts[0].A)
	assert.Equal(imm(256), prog.Insts[1].A)
}

func TestAssembler_ParenEvalInvalid(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("set r0 $(nonsense +)\n"))
	assert.Error(err)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t,
		"set r0 0",
		"loop: add r0 1",
		"if lt? r0 10",
		"jump loop",
	)

	assert.Len(prog.Insts, 4)
	jump := prog.Insts[3]
	assert.Equal(OP_ALU, jump.Class)
	assert.Equal(IR_IP, jump.Dst)
	assert.Equal(imm(1), jump.A)
}

func TestAssembler_LabelMissing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("jump nowhere\n"))
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))
}

func TestAssembler_LabelDuplicate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("a: set r0 1\na: set r0 2\n"))
	assert.ErrorIs(err, ErrLabelDuplicate)
}

func TestAssembler_IfAliases(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t,
		"if ge? r0 10",
		"if gt? r1 r2",
	)

	// ge?/gt? swap their operands into le?/lt? form.
	assert.Equal(Inst{Class: OP_IF, Cond: COND_OP_LE, A: imm(10), B: reg(IR_REG_R0), LineNo: 1}, prog.Insts[0])
	assert.Equal(Inst{Class: OP_IF, Cond: COND_OP_LT, A: reg(IR_REG_R2), B: reg(IR_REG_R1), LineNo: 2}, prog.Insts[1])
}

func TestAssembler_Halt(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, "halt")

	assert.Equal(aluInst(ALU_OP_SET, IR_IP, imm(HALT_IP)), withoutLineNo(prog.Insts[0]))
}

func TestAssembler_Invalid(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("frobnicate r0 1\n"))
	assert.ErrorIs(err, ErrInstructionInvalid)

	_, err = asm.Parse(strings.NewReader("set xyzzy 1\n"))
	assert.ErrorIs(err, ErrTargetInvalid)

	_, err = asm.Parse(strings.NewReader("set r0\n"))
	assert.ErrorIs(err, ErrOpcodeValueMissing)

	_, err = asm.Parse(strings.NewReader("set r0 1 2\n"))
	assert.ErrorIs(err, ErrOpcodeExtraArgs)

	_, err = asm.Parse(strings.NewReader("if wat? r0 1\n"))
	assert.ErrorIs(err, ErrOpcodeInvalid)
}

func TestAssembler_Reuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader("a: set r0 1\njump a\n"))
	assert.NoError(err)
	assert.Len(prog.Insts, 2)

	// A second parse starts from a clean slate.
	prog, err = asm.Parse(strings.NewReader("set r1 2\n"))
	assert.NoError(err)
	assert.Len(prog.Insts, 1)
}

func TestAssembler_Negative(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, "set r0 -2")

	assert.Equal(imm(0xfffffffe), prog.Insts[0].A)
}
