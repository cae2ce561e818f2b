// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the machine under debug.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Inst    []Inst // List of generated instructions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction addresses.
	Equate    map[string]string // Map of equates.
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
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	v64, err := strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	return
}

// dstMap maps ALU target names.
var dstMap = map[string]InstIR{
	"r0": IR_REG_R0,
	"r1": IR_REG_R1,
	"r2": IR_REG_R2,
	"r3": IR_REG_R3,
	"r4": IR_REG_R4,
	"r5": IR_REG_R5,
	"ip": IR_IP,
}

var labelRe = regexp.MustCompile(`^[a-zA-Z_][0-9a-zA-Z_]*$`)

// srcOf turns a word into a source operand. A word that is neither a
// register nor a number is taken as a jump label, linked after the full
// parse.
func (asm *Assembler) srcOf(word string) (src Src, label string, err error) {
	ir, ok := dstMap[word]
	if ok {
		src.Ir = ir
		return
	}

	value, verr := asm.valueOf(word)
	if verr == nil {
		src = Src{Ir: IR_IMM, Imm: value}
		return
	}

	if labelRe.MatchString(word) {
		label = word
		return
	}

	err = verr
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
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
	value = uint32(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a single line into instruction words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

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
		asm.Label[label] = len(asm.Inst)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// aluMap maps ALU opcode names.
var aluMap = map[string]AluOp{
	"set": ALU_OP_SET,
	"xor": ALU_OP_XOR,
	"and": ALU_OP_AND,
	"or":  ALU_OP_OR,
	"shl": ALU_OP_SHL,
	"shr": ALU_OP_SHR,
	"add": ALU_OP_ADD,
	"sub": ALU_OP_SUB,
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	// Alternate syntax substitutions
	switch {
	case len(words) == 2 && words[0] == "jump":
		// jump TARGET => set ip TARGET
		words = []string{"set", "ip", words[1]}
	case len(words) == 1 && words[0] == "halt":
		// halt => set ip HALT_IP
		words = []string{"set", "ip", fmt.Sprintf("%#x", HALT_IP)}
	default:
		// unchanged
	}

	inst := Inst{LineNo: lineno}

	switch words[0] {
	case "if":
		if len(words) < 4 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 4 {
			err = ErrOpcodeExtraArgs
			return
		}

		var a, b Src
		var label string
		a, label, err = asm.srcOf(words[2])
		if err == nil && len(label) != 0 {
			err = ErrParseNumber(label)
		}
		if err != nil {
			return
		}
		b, label, err = asm.srcOf(words[3])
		if err == nil && len(label) != 0 {
			err = ErrParseNumber(label)
		}
		if err != nil {
			return
		}

		op := COND_OP_EQ
		switch words[1] {
		case "eq?":
			op = COND_OP_EQ
		case "ne?":
			op = COND_OP_NE
		case "lt?":
			op = COND_OP_LT
		case "le?":
			op = COND_OP_LE
		case "ge?":
			op = COND_OP_LE
			b, a = a, b
		case "gt?":
			op = COND_OP_LT
			b, a = a, b
		default:
			err = ErrOpcodeInvalid
			return
		}

		inst.Class = OP_IF
		inst.Cond = op
		inst.A = a
		inst.B = b
	case "out":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		inst.Class = OP_OUT
		inst.A, inst.Label, err = asm.srcOf(words[1])
		if err == nil && len(inst.Label) != 0 {
			err = ErrParseNumber(inst.Label)
		}
		if err != nil {
			return
		}
	default:
		alu, ok := aluMap[words[0]]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		if len(words) < 3 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}

		dst, ok := dstMap[words[1]]
		if !ok {
			err = ErrTargetInvalid
			return
		}

		inst.Class = OP_ALU
		inst.Alu = alu
		inst.Dst = dst
		inst.A, inst.Label, err = asm.srcOf(words[2])
		if err != nil {
			return
		}
	}

	asm.Inst = append(asm.Inst, inst)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Inst = asm.Inst[:0]
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

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of jump labels.
	for n := range asm.Inst {
		inst := &asm.Inst[n]

		if len(inst.Label) == 0 {
			continue
		}
		ip, ok := asm.Label[inst.Label]
		if !ok {
			err = ErrLabelMissing(inst.Label)
			return
		}
		inst.A = Src{Ir: IR_IMM, Imm: uint32(ip)}
	}

	prog = &Program{
		Insts: slices.Clone(asm.Inst),
	}

	return
}
