// Package emu provides functional V810 emulation.
package emu

// ResetVector is the address the V810 starts executing from after reset.
const ResetVector uint32 = 0xFFFFFFF0

// RegFile represents the V810 register file.
// It contains 32 general-purpose registers (r0-r31), the program
// counter (PC), and the program status word (PSW).
type RegFile struct {
	// GPR holds general-purpose registers r0-r31.
	// GPR[0] is never written and ReadReg(0) always returns 0.
	GPR [32]uint32

	// PC is the program counter. It is always halfword aligned.
	PC uint32

	// PSW holds the processor status flags.
	PSW PSW
}

// NewRegFile creates a register file in its reset state.
func NewRegFile() *RegFile {
	r := &RegFile{}
	r.Reset()
	return r
}

// Reset puts the register file into the state the processor has at power
// on: PC at the reset vector, all registers zero, and only the NMI-pending
// flag set.
func (r *RegFile) Reset() {
	r.GPR = [32]uint32{}
	r.PC = ResetVector
	r.PSW = PSW{NMIPending: true}
}

// ReadReg reads a register value. Register 0 returns 0.
// The index is masked to 5 bits.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	reg &= 0x1F
	if reg == 0 {
		return 0
	}
	return r.GPR[reg]
}

// WriteReg writes a value to a register. Writes to register 0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	reg &= 0x1F
	if reg == 0 {
		return
	}
	r.GPR[reg] = value
}

// ReadPSW returns the packed PSW.
func (r *RegFile) ReadPSW() uint32 {
	return r.PSW.Pack()
}

// WritePSW replaces every PSW flag from a packed value.
func (r *RegFile) WritePSW(value uint32) {
	r.PSW = UnpackPSW(value)
}

// SetZeroSign sets Z when value is zero and S from bit 31.
func (r *RegFile) SetZeroSign(value uint32) {
	r.PSW.Zero = value == 0
	r.PSW.Sign = value&0x80000000 != 0
}
