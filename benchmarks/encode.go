package benchmarks

import (
	"encoding/binary"

	"github.com/sarchlab/v810/insts"
)

// Major opcodes, bits [15:10] of the first halfword.
const (
	opMOVReg = 0b000000
	opSUB    = 0b000010
	opJMP    = 0b000110
	opMOVImm = 0b010000
	opMOVEA  = 0b101000
	opMOVHI  = 0b101111
	opLDB    = 0b110000
	opLDW    = 0b110011
	opSTB    = 0b110100
	opSTW    = 0b110111
	opINB    = 0b111000
	opINW    = 0b111011
	opOUTB   = 0b111100
	opOUTW   = 0b111111
)

// BuildProgram assembles encoded instructions into little-endian bytes.
func BuildProgram(instrs ...[]uint16) []byte {
	var program []byte
	for _, inst := range instrs {
		for _, hw := range inst {
			program = binary.LittleEndian.AppendUint16(program, hw)
		}
	}
	return program
}

func formatI(op uint16, reg1, reg2 uint8) []uint16 {
	return []uint16{op<<10 | uint16(reg2&0x1F)<<5 | uint16(reg1&0x1F)}
}

func formatVI(op uint16, disp int16, reg1, reg2 uint8) []uint16 {
	return []uint16{formatI(op, reg1, reg2)[0], uint16(disp)}
}

// EncodeMOVReg encodes MOV reg1, reg2.
func EncodeMOVReg(reg1, reg2 uint8) []uint16 {
	return formatI(opMOVReg, reg1, reg2)
}

// EncodeSUB encodes SUB reg1, reg2: reg2 = reg2 - reg1.
func EncodeSUB(reg1, reg2 uint8) []uint16 {
	return formatI(opSUB, reg1, reg2)
}

// EncodeJMP encodes JMP [reg1].
func EncodeJMP(reg1 uint8) []uint16 {
	return formatI(opJMP, reg1, 0)
}

// EncodeMOVImm encodes MOV imm5, reg2. imm must fit in -16..15.
func EncodeMOVImm(imm int8, reg2 uint8) []uint16 {
	return formatI(opMOVImm, uint8(imm)&0x1F, reg2)
}

// EncodeMOVEA encodes MOVEA imm16, reg1, reg2: reg2 = reg1 + sext(imm16).
func EncodeMOVEA(imm uint16, reg1, reg2 uint8) []uint16 {
	return []uint16{formatI(opMOVEA, reg1, reg2)[0], imm}
}

// EncodeMOVHI encodes MOVHI imm16, reg1, reg2: reg2 = reg1 + imm16<<16.
func EncodeMOVHI(imm uint16, reg1, reg2 uint8) []uint16 {
	return []uint16{formatI(opMOVHI, reg1, reg2)[0], imm}
}

// EncodeBcond encodes a conditional branch. disp is relative to the
// branch itself and must fit in 9 bits.
func EncodeBcond(cond insts.Cond, disp int16) []uint16 {
	return []uint16{0x8000 | uint16(cond&0xF)<<9 | uint16(disp)&0x1FF}
}

// EncodeHalt encodes BR +0, the loop every benchmark ends in.
func EncodeHalt() []uint16 {
	return EncodeBcond(insts.CondT, 0)
}

// EncodeLDB encodes LD.B disp[reg1], reg2.
func EncodeLDB(disp int16, reg1, reg2 uint8) []uint16 {
	return formatVI(opLDB, disp, reg1, reg2)
}

// EncodeLDW encodes LD.W disp[reg1], reg2.
func EncodeLDW(disp int16, reg1, reg2 uint8) []uint16 {
	return formatVI(opLDW, disp, reg1, reg2)
}

// EncodeSTB encodes ST.B reg2, disp[reg1].
func EncodeSTB(reg2 uint8, disp int16, reg1 uint8) []uint16 {
	return formatVI(opSTB, disp, reg1, reg2)
}

// EncodeSTW encodes ST.W reg2, disp[reg1].
func EncodeSTW(reg2 uint8, disp int16, reg1 uint8) []uint16 {
	return formatVI(opSTW, disp, reg1, reg2)
}

// EncodeINB encodes IN.B disp[reg1], reg2.
func EncodeINB(disp int16, reg1, reg2 uint8) []uint16 {
	return formatVI(opINB, disp, reg1, reg2)
}

// EncodeINW encodes IN.W disp[reg1], reg2.
func EncodeINW(disp int16, reg1, reg2 uint8) []uint16 {
	return formatVI(opINW, disp, reg1, reg2)
}

// EncodeOUTB encodes OUT.B reg2, disp[reg1].
func EncodeOUTB(reg2 uint8, disp int16, reg1 uint8) []uint16 {
	return formatVI(opOUTB, disp, reg1, reg2)
}

// EncodeOUTW encodes OUT.W reg2, disp[reg1].
func EncodeOUTW(reg2 uint8, disp int16, reg1 uint8) []uint16 {
	return formatVI(opOUTW, disp, reg1, reg2)
}
