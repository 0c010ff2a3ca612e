package insts

// opInfo is the static metadata attached to every opcode.
type opInfo struct {
	mnemonic string
	format   Format

	// cycles is the cost of the instruction. For Bcond it is the
	// not-taken cost and takenCycles applies when the branch is taken.
	cycles      uint32
	takenCycles uint32
}

var opTable = [...]opInfo{
	OpUnknown: {"???", FormatUnknown, 1, 1},
	OpMOVReg:  {"mov", FormatI, 1, 1},
	OpSUB:     {"sub", FormatI, 1, 1},
	OpJMP:     {"jmp", FormatI, 3, 3},
	OpMOVImm:  {"mov", FormatII, 1, 1},
	OpCLI:     {"cli", FormatII, 12, 12},
	OpLDSR:    {"ldsr", FormatII, 8, 8},
	OpSEI:     {"sei", FormatII, 12, 12},
	OpBV:      {"bv", FormatBcond, 1, 3},
	OpBC:      {"bc", FormatBcond, 1, 3},
	OpBZ:      {"bz", FormatBcond, 1, 3},
	OpBNH:     {"bnh", FormatBcond, 1, 3},
	OpBN:      {"bn", FormatBcond, 1, 3},
	OpBR:      {"br", FormatBcond, 3, 3},
	OpBLT:     {"blt", FormatBcond, 1, 3},
	OpBLE:     {"ble", FormatBcond, 1, 3},
	OpBNV:     {"bnv", FormatBcond, 1, 3},
	OpBNC:     {"bnc", FormatBcond, 1, 3},
	OpBNZ:     {"bnz", FormatBcond, 1, 3},
	OpBH:      {"bh", FormatBcond, 1, 3},
	OpBP:      {"bp", FormatBcond, 1, 3},
	OpNOP:     {"nop", FormatBcond, 1, 1},
	OpBGE:     {"bge", FormatBcond, 1, 3},
	OpBGT:     {"bgt", FormatBcond, 1, 3},
	OpMOVEA:   {"movea", FormatV, 1, 1},
	OpMOVHI:   {"movhi", FormatV, 1, 1},
	OpLDB:     {"ld.b", FormatVI, 5, 5},
	OpLDH:     {"ld.h", FormatVI, 5, 5},
	OpLDW:     {"ld.w", FormatVI, 5, 5},
	OpSTB:     {"st.b", FormatVI, 4, 4},
	OpSTH:     {"st.h", FormatVI, 4, 4},
	OpSTW:     {"st.w", FormatVI, 4, 4},
	OpINB:     {"in.b", FormatVI, 5, 5},
	OpINH:     {"in.h", FormatVI, 5, 5},
	OpINW:     {"in.w", FormatVI, 5, 5},
	OpOUTB:    {"out.b", FormatVI, 4, 4},
	OpOUTH:    {"out.h", FormatVI, 4, 4},
	OpOUTW:    {"out.w", FormatVI, 4, 4},
}

func (op Op) info() opInfo {
	if int(op) >= len(opTable) {
		return opTable[OpUnknown]
	}
	return opTable[op]
}

// String returns the assembler mnemonic.
func (op Op) String() string {
	return op.info().mnemonic
}

// Format returns the encoding format declared for the opcode.
func (op Op) Format() Format {
	return op.info().format
}

// Cycles returns the number of cycles the opcode consumes. taken only
// matters for conditional branches.
func (op Op) Cycles(taken bool) uint32 {
	info := op.info()
	if taken {
		return info.takenCycles
	}
	return info.cycles
}

// IsBranch reports whether op belongs to the Bcond group.
func (op Op) IsBranch() bool {
	return op >= OpBV && op <= OpBGT
}

// IsLoad reports whether op reads memory (LD and IN).
func (op Op) IsLoad() bool {
	switch op {
	case OpLDB, OpLDH, OpLDW, OpINB, OpINH, OpINW:
		return true
	}
	return false
}

// IsStore reports whether op writes memory (ST and OUT).
func (op Op) IsStore() bool {
	switch op {
	case OpSTB, OpSTH, OpSTW, OpOUTB, OpOUTH, OpOUTW:
		return true
	}
	return false
}

// SystemRegister maps an LDSR selector to a system register. Only PSW is
// wired; every other selector returns SysRegUnknown.
func (op Op) SystemRegister(imm5 uint8) SystemRegister {
	if op != OpLDSR {
		return SysRegUnknown
	}
	switch SystemRegister(imm5 & 0x1F) {
	case SysRegPSW:
		return SysRegPSW
	default:
		return SysRegUnknown
	}
}
