// Package emu provides functional V810 emulation.
package emu

import (
	"fmt"
	"io"

	"github.com/sarchlab/v810/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Inst is the instruction that was executed. It is nil when the step
	// failed before decoding completed.
	Inst *insts.Instruction

	// Taken is true if a conditional branch was taken.
	Taken bool

	// Cycles is the number of cycles reported to the bus.
	Cycles uint32

	// Err is set if the instruction could not be executed. The register
	// file is left untouched and no cycles are reported.
	Err error
}

// CycleTable supplies the cycle cost of an executed instruction.
type CycleTable interface {
	Cycles(inst *insts.Instruction, taken bool) uint32
}

// opcodeCycles charges the cycle counts attached to the opcode table.
type opcodeCycles struct{}

func (opcodeCycles) Cycles(inst *insts.Instruction, taken bool) uint32 {
	return inst.Op.Cycles(taken)
}

// StopCondition is checked by Run after every instruction. Returning true
// ends the run.
type StopCondition func(regFile *RegFile) (bool, error)

// Emulator executes V810 instructions functionally.
type Emulator struct {
	regFile *RegFile
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	cycles CycleTable
	trace  io.Writer
	stop   StopCondition

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithTrace writes one disassembled line per executed instruction to w.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// WithCycleTable replaces the opcode table's cycle counts.
func WithCycleTable(table CycleTable) EmulatorOption {
	return func(e *Emulator) {
		e.cycles = table
	}
}

// WithStopCondition sets the condition Run checks after every instruction.
func WithStopCondition(stop StopCondition) EmulatorOption {
	return func(e *Emulator) {
		e.stop = stop
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new V810 emulator in its reset state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := NewRegFile()

	e := &Emulator{
		regFile: regFile,
		decoder: insts.NewDecoder(),
		cycles:  opcodeCycles{},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile)
	e.branchUnit = NewBranchUnit(regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// RegPC returns the program counter.
func (e *Emulator) RegPC() uint32 {
	return e.regFile.PC
}

// RegGPR returns general-purpose register index. r0 always reads 0.
func (e *Emulator) RegGPR(index uint8) uint32 {
	return e.regFile.ReadReg(index)
}

// RegPSW returns the packed program status word.
func (e *Emulator) RegPSW() uint32 {
	return e.regFile.ReadPSW()
}

// SetRegPSW replaces the program status word. Interrupt controllers use
// this to deliver interrupts.
func (e *Emulator) SetRegPSW(value uint32) {
	e.regFile.WritePSW(value)
}

// Reset returns the processor to its power-on state.
func (e *Emulator) Reset() {
	e.regFile.Reset()
	e.instructionCount = 0
}

// Step executes a single instruction against bus.
func (e *Emulator) Step(bus Bus) StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC

	// 1. Fetch the first halfword and classify it
	first := bus.Read16(pc)
	op := e.decoder.Decode(first)
	if op == insts.OpUnknown {
		return StepResult{
			Err: fmt.Errorf("%w: %s", ErrUnknownOpcode,
				f("halfword 0x%04x at pc 0x%08x", first, pc)),
		}
	}

	// 2. Fetch the second halfword if the format has one
	var second uint16
	if op.Format().HasSecondHalfword() {
		second = bus.Read16(pc + 2)
	}
	inst := e.decoder.DecodeInstruction(first, second)

	// 3. Execute
	nextPC, taken, err := e.execute(bus, pc, inst)
	if err != nil {
		return StepResult{Inst: inst, Err: err}
	}

	if e.trace != nil {
		e.traceInst(pc, inst, taken)
	}

	// 4. Commit and report cycles
	e.regFile.PC = nextPC
	e.instructionCount++

	cycles := e.cycles.Cycles(inst, taken)
	bus.Cycles(cycles)

	return StepResult{Inst: inst, Taken: taken, Cycles: cycles}
}

// Run executes instructions until a step fails or the stop condition
// holds. It returns nil when stopped by the condition.
func (e *Emulator) Run(bus Bus) error {
	for {
		result := e.Step(bus)
		if result.Err != nil {
			return result.Err
		}

		if e.stop != nil {
			done, err := e.stop(e.regFile)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// execute applies inst and returns the address of the next instruction.
func (e *Emulator) execute(bus Bus, pc uint32, inst *insts.Instruction) (uint32, bool, error) {
	nextPC := pc + inst.Size()

	switch inst.Op {
	// Format I
	case insts.OpMOVReg:
		e.alu.MOV(inst.Reg1, inst.Reg2)
	case insts.OpSUB:
		e.alu.SUB(inst.Reg1, inst.Reg2)
	case insts.OpJMP:
		nextPC = e.branchUnit.JMP(inst.Reg1)

	// Format II
	case insts.OpMOVImm:
		e.alu.MOVImm(inst.Imm5, inst.Reg2)
	case insts.OpCLI:
		e.regFile.PSW.InterruptDisable = false
	case insts.OpSEI:
		e.regFile.PSW.InterruptDisable = true
	case insts.OpLDSR:
		switch inst.Op.SystemRegister(inst.Imm5) {
		case insts.SysRegPSW:
			e.regFile.WritePSW(e.regFile.ReadReg(inst.Reg2))
		default:
			return 0, false, fmt.Errorf("%w: %s", ErrSystemRegister,
				f("ldsr selector %d at pc 0x%08x", inst.Imm5, pc))
		}

	// Bcond
	case insts.OpBV, insts.OpBC, insts.OpBZ, insts.OpBNH,
		insts.OpBN, insts.OpBR, insts.OpBLT, insts.OpBLE,
		insts.OpBNV, insts.OpBNC, insts.OpBNZ, insts.OpBH,
		insts.OpBP, insts.OpNOP, insts.OpBGE, insts.OpBGT:
		var taken bool
		nextPC, taken = e.branchUnit.Bcond(pc, nextPC, inst.Cond, inst.Disp)
		return nextPC, taken, nil

	// Format V
	case insts.OpMOVEA:
		e.alu.MOVEA(inst.Reg1, inst.Reg2, inst.Imm16)
	case insts.OpMOVHI:
		e.alu.MOVHI(inst.Reg1, inst.Reg2, inst.Imm16)

	// Format VI
	case insts.OpLDB, insts.OpINB:
		e.lsu.LDB(bus, inst.Reg1, inst.Reg2, inst.Disp16)
	case insts.OpLDH, insts.OpINH:
		e.lsu.LDH(bus, inst.Reg1, inst.Reg2, inst.Disp16)
	case insts.OpLDW, insts.OpINW:
		e.lsu.LDW(bus, inst.Reg1, inst.Reg2, inst.Disp16)
	case insts.OpSTB, insts.OpOUTB:
		e.lsu.STB(bus, inst.Reg1, inst.Reg2, inst.Disp16)
	case insts.OpSTH, insts.OpOUTH:
		e.lsu.STH(bus, inst.Reg1, inst.Reg2, inst.Disp16)
	case insts.OpSTW, insts.OpOUTW:
		e.lsu.STW(bus, inst.Reg1, inst.Reg2, inst.Disp16)

	default:
		return 0, false, fmt.Errorf("%w: %s", ErrUnknownOpcode,
			f("halfword 0x%04x at pc 0x%08x", inst.First, pc))
	}

	return nextPC, false, nil
}

// traceInst writes "pc  halfwords  disassembly" for one instruction.
func (e *Emulator) traceInst(pc uint32, inst *insts.Instruction, taken bool) {
	raw := fmt.Sprintf("%04x     ", inst.First)
	if inst.Format.HasSecondHalfword() {
		raw = fmt.Sprintf("%04x %04x", inst.First, inst.Second)
	}

	suffix := ""
	if inst.Op.IsBranch() && taken {
		suffix = "  ; taken"
	}

	_, _ = fmt.Fprintf(e.trace, "%08x  %s  %s%s\n", pc, raw, inst, suffix)
}
