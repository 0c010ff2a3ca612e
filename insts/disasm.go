package insts

import "fmt"

// String disassembles the instruction. Branch targets are printed relative
// to the instruction's own address.
func (i *Instruction) String() string {
	mnemonic := i.Op.String()

	switch i.Format {
	case FormatI:
		if i.Op == OpJMP {
			return fmt.Sprintf("%s [r%d]", mnemonic, i.Reg1)
		}
		return fmt.Sprintf("%s r%d, r%d", mnemonic, i.Reg1, i.Reg2)
	case FormatII:
		switch i.Op {
		case OpCLI, OpSEI:
			return mnemonic
		case OpLDSR:
			return fmt.Sprintf("%s r%d, %d", mnemonic, i.Reg2, i.Imm5)
		default:
			return fmt.Sprintf("%s %d, r%d", mnemonic, int32(SignExtendImm5(i.Imm5)), i.Reg2)
		}
	case FormatBcond:
		if i.Op == OpNOP {
			return mnemonic
		}
		return fmt.Sprintf("%s %+d", mnemonic, int32(i.Disp))
	case FormatV:
		return fmt.Sprintf("%s 0x%04x, r%d, r%d", mnemonic, i.Imm16, i.Reg1, i.Reg2)
	case FormatVI:
		if i.Op.IsStore() {
			return fmt.Sprintf("%s r%d, %d[r%d]", mnemonic, i.Reg2, i.Disp16, i.Reg1)
		}
		return fmt.Sprintf("%s %d[r%d], r%d", mnemonic, i.Disp16, i.Reg1, i.Reg2)
	default:
		return fmt.Sprintf(".dh 0x%04x", i.First)
	}
}
