// Package emu provides functional V810 emulation.
package emu

import "github.com/sarchlab/v810/insts"

// ALU implements V810 register transfer and arithmetic operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// MOV copies a register: r2 = r1
func (a *ALU) MOV(reg1, reg2 uint8) {
	a.regFile.WriteReg(reg2, a.regFile.ReadReg(reg1))
}

// MOVImm loads a sign-extended 5-bit immediate: r2 = sext(imm5)
func (a *ALU) MOVImm(imm5, reg2 uint8) {
	a.regFile.WriteReg(reg2, insts.SignExtendImm5(imm5))
}

// SUB performs subtraction with flag update: r2 = r2 - r1
func (a *ALU) SUB(reg1, reg2 uint8) {
	lhs := a.regFile.ReadReg(reg2)
	rhs := a.regFile.ReadReg(reg1)
	result := lhs - rhs

	a.regFile.WriteReg(reg2, result)
	a.setSubFlags(lhs, rhs, result)
}

// MOVEA adds a sign-extended 16-bit immediate: r2 = r1 + sext(imm16)
func (a *ALU) MOVEA(reg1, reg2 uint8, imm16 uint16) {
	result := a.regFile.ReadReg(reg1) + uint32(int32(int16(imm16)))
	a.regFile.WriteReg(reg2, result)
}

// MOVHI adds an immediate to the upper half: r2 = r1 + (imm16 << 16)
func (a *ALU) MOVHI(reg1, reg2 uint8, imm16 uint16) {
	result := a.regFile.ReadReg(reg1) + uint32(imm16)<<16
	a.regFile.WriteReg(reg2, result)
}

// setSubFlags sets Z, S, OV and CY for lhs - rhs.
func (a *ALU) setSubFlags(lhs, rhs, result uint32) {
	psw := &a.regFile.PSW
	a.regFile.SetZeroSign(result)
	// Borrow out of bit 31
	psw.Carry = lhs < rhs
	// Overflow when the operands' signs differ and the result's sign
	// differs from lhs
	psw.Overflow = ((lhs^rhs)&^(rhs^result))&0x80000000 != 0
}
