// Package latency provides instruction timing models for the V810.
//
// The cycle counts default to the values attached to the opcode table and
// can be overridden via TimingConfig, for example to model wait states on a
// slower cartridge bus.
package latency

import (
	"github.com/sarchlab/v810/insts"
)

// Table provides instruction latency lookups. It satisfies emu.CycleTable.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default V810 timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// Cycles returns the number of cycles inst consumes. taken only matters
// for conditional branches.
func (t *Table) Cycles(inst *insts.Instruction, taken bool) uint32 {
	if inst == nil {
		return 1
	}

	switch {
	case inst.Op.IsBranch():
		if taken {
			return t.config.BranchTakenLatency
		}
		return t.config.BranchNotTakenLatency
	case t.IsLoadOp(inst):
		if isPortOp(inst.Op) {
			return t.config.InputLatency
		}
		return t.config.LoadLatency
	case t.IsStoreOp(inst):
		if isPortOp(inst.Op) {
			return t.config.OutputLatency
		}
		return t.config.StoreLatency
	}

	switch inst.Op {
	case insts.OpJMP:
		return t.config.JumpLatency
	case insts.OpCLI, insts.OpSEI:
		return t.config.InterruptFlagLatency
	case insts.OpLDSR:
		return t.config.SystemRegisterLatency
	default:
		return t.config.RegisterLatency
	}
}

// IsMemoryOp returns true if the instruction accesses the bus for data.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	return t.IsLoadOp(inst) || t.IsStoreOp(inst)
}

// IsLoadOp returns true if the instruction is a load or port input.
func (t *Table) IsLoadOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op.IsLoad()
}

// IsStoreOp returns true if the instruction is a store or port output.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op.IsStore()
}

// IsBranchOp returns true if the instruction can redirect the PC.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op.IsBranch() || inst.Op == insts.OpJMP
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}

func isPortOp(op insts.Op) bool {
	switch op {
	case insts.OpINB, insts.OpINH, insts.OpINW,
		insts.OpOUTB, insts.OpOUTH, insts.OpOUTW:
		return true
	}
	return false
}
