// Package emu provides functional V810 emulation.
package emu

import "github.com/sarchlab/v810/insts"

// BranchUnit implements V810 branch operations.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JMP returns the target of a register-indirect jump.
func (b *BranchUnit) JMP(reg1 uint8) uint32 {
	return b.regFile.ReadReg(reg1)
}

// Bcond resolves a conditional branch located at pc. It returns the branch
// target and true when the condition holds, and next and false otherwise.
// disp is the sign-extended 9-bit displacement.
func (b *BranchUnit) Bcond(pc, next uint32, cond insts.Cond, disp uint32) (uint32, bool) {
	if !b.CheckCondition(cond) {
		return next, false
	}
	return pc + disp, true
}

// CheckCondition evaluates a V810 condition code against the current PSW flags.
func (b *BranchUnit) CheckCondition(cond insts.Cond) bool {
	psw := &b.regFile.PSW

	switch cond {
	case insts.CondV:
		return psw.Overflow
	case insts.CondC:
		return psw.Carry
	case insts.CondZ:
		return psw.Zero
	case insts.CondNH:
		return psw.Carry || psw.Zero
	case insts.CondN:
		return psw.Sign
	case insts.CondT:
		return true
	case insts.CondLT:
		return psw.Sign != psw.Overflow
	case insts.CondLE:
		return (psw.Sign != psw.Overflow) != psw.Zero
	case insts.CondNV:
		return !psw.Overflow
	case insts.CondNC:
		return !psw.Carry
	case insts.CondNZ:
		return !psw.Zero
	case insts.CondH:
		return !(psw.Carry || psw.Zero)
	case insts.CondP:
		return !psw.Sign
	case insts.CondF:
		return false
	case insts.CondGE:
		return psw.Sign == psw.Overflow
	case insts.CondGT:
		return !((psw.Sign != psw.Overflow) || psw.Zero)
	default:
		return false
	}
}
