// Package insts provides V810 instruction definitions and decoding.
package insts

// Op represents a V810 opcode.
type Op uint16

// V810 opcodes. The Bcond group (OpBV through OpBGT) is laid out in
// condition-code order so that cond == op - OpBV.
const (
	OpUnknown Op = iota
	OpMOVReg
	OpSUB
	OpJMP
	OpMOVImm
	OpCLI
	OpLDSR
	OpSEI
	OpBV
	OpBC
	OpBZ
	OpBNH
	OpBN
	OpBR
	OpBLT
	OpBLE
	OpBNV
	OpBNC
	OpBNZ
	OpBH
	OpBP
	OpNOP
	OpBGE
	OpBGT
	OpMOVEA
	OpMOVHI
	OpLDB
	OpLDH
	OpLDW
	OpSTB
	OpSTH
	OpSTW
	OpINB
	OpINH
	OpINW
	OpOUTB
	OpOUTH
	OpOUTW
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatI               // reg1, reg2
	FormatII              // imm5, reg2
	FormatBcond           // cond, disp9
	FormatV               // reg1, reg2, imm16 in the second halfword
	FormatVI              // reg1, reg2, disp16 in the second halfword
)

// HasSecondHalfword reports whether instructions of this format are followed
// by a second 16-bit halfword.
func (f Format) HasSecondHalfword() bool {
	return f == FormatV || f == FormatVI
}

// Cond represents a V810 branch condition code.
type Cond uint8

// V810 condition codes, as encoded in bits [12:9] of a Bcond halfword.
const (
	CondV  Cond = 0x0 // Overflow (OV == 1)
	CondC  Cond = 0x1 // Carry / Lower (CY == 1)
	CondZ  Cond = 0x2 // Zero / Equal (Z == 1)
	CondNH Cond = 0x3 // Not higher (CY == 1 || Z == 1)
	CondN  Cond = 0x4 // Negative (S == 1)
	CondT  Cond = 0x5 // Always
	CondLT Cond = 0x6 // Less than (S != OV)
	CondLE Cond = 0x7 // Less than or equal ((S != OV) != Z)
	CondNV Cond = 0x8 // No overflow
	CondNC Cond = 0x9 // No carry / Not lower
	CondNZ Cond = 0xA // Not zero / Not equal
	CondH  Cond = 0xB // Higher
	CondP  Cond = 0xC // Positive (S == 0)
	CondF  Cond = 0xD // Never
	CondGE Cond = 0xE // Greater than or equal
	CondGT Cond = 0xF // Greater than
)

// SystemRegister identifies a system register selected by LDSR.
type SystemRegister uint8

// System registers reachable from this core.
const (
	SysRegUnknown SystemRegister = 0xFF
	SysRegPSW     SystemRegister = 5
)

// Instruction represents a decoded V810 instruction.
type Instruction struct {
	Op     Op     // Operation code
	Format Format // Encoding format

	// Raw halfwords. Second is zero for single-halfword formats.
	First  uint16
	Second uint16

	Reg1 uint8 // Source / base register (bits [4:0])
	Reg2 uint8 // Destination / data register (bits [9:5])
	Imm5 uint8 // 5-bit immediate or system register selector (Format II)

	Imm16  uint16 // Format V immediate
	Disp16 int16  // Format VI displacement

	// Branch fields
	Cond Cond   // Condition code for Bcond
	Disp uint32 // Sign-extended 9-bit displacement in bytes
}

// Size returns the instruction length in bytes.
func (i *Instruction) Size() uint32 {
	if i.Format.HasSecondHalfword() {
		return 4
	}
	return 2
}

// Decoder decodes V810 halfwords into instructions.
type Decoder struct{}

// NewDecoder creates a new V810 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode classifies the first halfword of an instruction. It returns
// OpUnknown for bit patterns outside the opcode table.
func (d *Decoder) Decode(halfword uint16) Op {
	// Bcond: bits [15:13] == 0b100, condition in bits [12:9]
	if halfword>>13 == 0b100 {
		return OpBV + Op((halfword>>9)&0xF)
	}

	switch halfword >> 10 { // bits [15:10]
	case 0b000000:
		return OpMOVReg
	case 0b000010:
		return OpSUB
	case 0b000110:
		return OpJMP
	case 0b010000:
		return OpMOVImm
	case 0b010110:
		return OpCLI
	case 0b011100:
		return OpLDSR
	case 0b011110:
		return OpSEI
	case 0b101000:
		return OpMOVEA
	case 0b101111:
		return OpMOVHI
	case 0b110000:
		return OpLDB
	case 0b110001:
		return OpLDH
	case 0b110011:
		return OpLDW
	case 0b110100:
		return OpSTB
	case 0b110101:
		return OpSTH
	case 0b110111:
		return OpSTW
	case 0b111000:
		return OpINB
	case 0b111001:
		return OpINH
	case 0b111011:
		return OpINW
	case 0b111100:
		return OpOUTB
	case 0b111101:
		return OpOUTH
	case 0b111111:
		return OpOUTW
	default:
		return OpUnknown
	}
}

// DecodeInstruction decodes a complete instruction. The second halfword is
// ignored unless the opcode's format declares one.
func (d *Decoder) DecodeInstruction(first, second uint16) *Instruction {
	op := d.Decode(first)
	inst := &Instruction{
		Op:     op,
		Format: op.Format(),
		First:  first,
	}

	switch inst.Format {
	case FormatI:
		inst.Reg1, inst.Reg2 = DecodeFormatI(first)
	case FormatII:
		inst.Imm5, inst.Reg2 = DecodeFormatII(first)
	case FormatBcond:
		inst.Cond, inst.Disp = DecodeFormatBcond(first)
	case FormatV:
		inst.Second = second
		inst.Reg1, inst.Reg2, inst.Imm16 = DecodeFormatV(first, second)
	case FormatVI:
		inst.Second = second
		inst.Reg1, inst.Reg2, inst.Disp16 = DecodeFormatVI(first, second)
	}

	return inst
}

// DecodeFormatI extracts reg1 (bits [4:0]) and reg2 (bits [9:5]).
func DecodeFormatI(first uint16) (reg1, reg2 uint8) {
	return uint8(first & 0x1F), uint8((first >> 5) & 0x1F)
}

// DecodeFormatII extracts imm5 (bits [4:0]) and reg2 (bits [9:5]).
func DecodeFormatII(first uint16) (imm5, reg2 uint8) {
	return uint8(first & 0x1F), uint8((first >> 5) & 0x1F)
}

// DecodeFormatBcond extracts the condition (bits [12:9]) and the 9-bit
// displacement (bits [8:0]) sign-extended to 32 bits.
func DecodeFormatBcond(first uint16) (cond Cond, disp uint32) {
	return Cond((first >> 9) & 0xF), SignExtendDisp9(first & 0x1FF)
}

// DecodeFormatV extracts reg1, reg2 and the raw 16-bit immediate.
func DecodeFormatV(first, second uint16) (reg1, reg2 uint8, imm16 uint16) {
	reg1, reg2 = DecodeFormatI(first)
	return reg1, reg2, second
}

// DecodeFormatVI extracts reg1, reg2 and the signed 16-bit displacement.
func DecodeFormatVI(first, second uint16) (reg1, reg2 uint8, disp16 int16) {
	reg1, reg2 = DecodeFormatI(first)
	return reg1, reg2, int16(second)
}

// SignExtendImm5 sign-extends a 5-bit immediate to 32 bits.
func SignExtendImm5(imm5 uint8) uint32 {
	value := uint32(imm5 & 0x1F)
	if value&0x10 != 0 {
		value |= 0xFFFFFFE0
	}
	return value
}

// SignExtendDisp9 sign-extends a 9-bit branch displacement to 32 bits.
func SignExtendDisp9(disp9 uint16) uint32 {
	value := uint32(disp9 & 0x1FF)
	if value&0x100 != 0 {
		value |= 0xFFFFFE00
	}
	return value
}
