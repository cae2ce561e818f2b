package cpu

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
)

const (
	REG_COUNT = 6                // Number of general purpose registers.
	HALT_IP   = uint32(0xffffff) // Instruction pointer parked past any program.
)

var _cpu_defines = map[string]string{
	"REG_COUNT": fmt.Sprintf("%v", REG_COUNT),
	"HALT_IP":   fmt.Sprintf("%#x", HALT_IP),
}

// Cpu is the simulation context for the machine under debug.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       uint32            // Current instruction pointer.
	Register [REG_COUNT]uint32 // Register bank.
	Output   io.Writer         // Sink for the out instruction, may be nil.
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset clears the registers and parks the instruction pointer at the
// program start.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Ip = 0
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   ip: %08x\n", cpu.Ip)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("   r%d: %08x\n", n, val)
	}
	return
}

// regMap maps debugger register names to register bank indexes.
var regMap = map[string]int{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
}

// Resolve returns the value of a register by its debugger name. This is
// the register lookup capability consumed by the sdb expression
// evaluator.
func (cpu *Cpu) Resolve(name string) (value uint32, err error) {
	if name == "ip" {
		value = cpu.Ip
		return
	}

	n, ok := regMap[name]
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	value = cpu.Register[n]
	return
}

// getValue reads a source operand.
func (cpu *Cpu) getValue(src Src) (value uint32) {
	switch src.Ir {
	case IR_IMM:
		value = src.Imm
	case IR_IP:
		value = cpu.Ip
	default:
		value = cpu.Register[src.Ir-IR_REG_R0]
	}
	return
}

// doAlu performs the requested ALU action, and returns the output value.
func (cpu *Cpu) doAlu(op AluOp, input uint32, value uint32) (output uint32) {
	switch op {
	case ALU_OP_SET:
		output = value
	case ALU_OP_XOR:
		output = input ^ value
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_OR:
		output = input | value
	case ALU_OP_SHL:
		value &= 0x1f // clamp to 31 bits of shift
		output = input << value
	case ALU_OP_SHR:
		value &= 0x1f // clamp to 31 bits of shift
		output = input >> value
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	}

	return
}

// Tick executes a single instruction of prog. Execution is done once
// the instruction pointer leaves the program.
func (cpu *Cpu) Tick(prog *Program) (done bool, err error) {
	if int(cpu.Ip) >= len(prog.Insts) {
		done = true
		return
	}

	inst := prog.Insts[cpu.Ip]
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Ip, inst)
	}

	next_ip := cpu.Ip + 1

	switch inst.Class {
	case OP_ALU:
		val := cpu.getValue(inst.A)
		var input uint32
		var set_target func(value uint32)
		switch inst.Dst {
		case IR_IP:
			input = next_ip
			set_target = func(value uint32) { next_ip = value }
		case IR_REG_R0, IR_REG_R1, IR_REG_R2, IR_REG_R3, IR_REG_R4, IR_REG_R5:
			dst := inst.Dst - IR_REG_R0
			input = cpu.Register[dst]
			set_target = func(value uint32) { cpu.Register[dst] = value }
		default:
			err = ErrTargetInvalid
			return
		}
		set_target(cpu.doAlu(inst.Alu, input, val))
	case OP_IF:
		// Treat as signed.
		a := int32(cpu.getValue(inst.A))
		b := int32(cpu.getValue(inst.B))
		var cond bool
		switch inst.Cond {
		case COND_OP_EQ:
			cond = a == b
		case COND_OP_NE:
			cond = a != b
		case COND_OP_LT:
			cond = a < b
		case COND_OP_LE:
			cond = a <= b
		}
		if !cond {
			// Skip the guarded instruction.
			next_ip++
		}
	case OP_OUT:
		if cpu.Output != nil {
			fmt.Fprintf(cpu.Output, "%d\n", int32(cpu.getValue(inst.A)))
		}
	default:
		err = ErrInstDecode
		return
	}

	cpu.Ip = next_ip

	return
}
