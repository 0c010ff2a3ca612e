// Package emu provides functional V810 emulation.
package emu

import "strings"

// PSW bit positions.
const (
	PSWZero                   uint32 = 1 << 0
	PSWSign                   uint32 = 1 << 1
	PSWOverflow               uint32 = 1 << 2
	PSWCarry                  uint32 = 1 << 3
	PSWFPPrecisionDegradation uint32 = 1 << 4
	PSWFPUnderflow            uint32 = 1 << 5
	PSWFPOverflow             uint32 = 1 << 6
	PSWFPZeroDivision         uint32 = 1 << 7
	PSWFPInvalidOperation     uint32 = 1 << 8
	PSWFPReservedOperand      uint32 = 1 << 9
	PSWInterruptDisable       uint32 = 1 << 12
	PSWAddressTrapEnable      uint32 = 1 << 13
	PSWExceptionPending       uint32 = 1 << 14
	PSWNMIPending             uint32 = 1 << 15

	pswMaskLevelShift = 16
	pswMaskLevelBits  = 0xF

	// PSWMask covers every bit that survives a Pack/Unpack round trip.
	// Bits 10-11 and 20-31 always read back as zero.
	PSWMask uint32 = 0x000FF3FF
)

// PSW is the V810 program status word. The struct is the source of truth;
// the packed uint32 only exists for LDSR and external inspection.
type PSW struct {
	Zero     bool
	Sign     bool
	Overflow bool
	Carry    bool

	// Floating-point exception flags. No FPU opcodes are implemented, so
	// these only change through LDSR or SetRegPSW.
	FPPrecisionDegradation bool
	FPUnderflow            bool
	FPOverflow             bool
	FPZeroDivision         bool
	FPInvalidOperation     bool
	FPReservedOperand      bool

	InterruptDisable  bool
	AddressTrapEnable bool
	ExceptionPending  bool
	NMIPending        bool

	// InterruptMaskLevel is 0-15.
	InterruptMaskLevel uint8
}

// Pack returns the PSW as the 32-bit system register value.
func (p PSW) Pack() uint32 {
	var v uint32
	v |= bit(p.Zero, PSWZero)
	v |= bit(p.Sign, PSWSign)
	v |= bit(p.Overflow, PSWOverflow)
	v |= bit(p.Carry, PSWCarry)
	v |= bit(p.FPPrecisionDegradation, PSWFPPrecisionDegradation)
	v |= bit(p.FPUnderflow, PSWFPUnderflow)
	v |= bit(p.FPOverflow, PSWFPOverflow)
	v |= bit(p.FPZeroDivision, PSWFPZeroDivision)
	v |= bit(p.FPInvalidOperation, PSWFPInvalidOperation)
	v |= bit(p.FPReservedOperand, PSWFPReservedOperand)
	v |= bit(p.InterruptDisable, PSWInterruptDisable)
	v |= bit(p.AddressTrapEnable, PSWAddressTrapEnable)
	v |= bit(p.ExceptionPending, PSWExceptionPending)
	v |= bit(p.NMIPending, PSWNMIPending)
	v |= uint32(p.InterruptMaskLevel&pswMaskLevelBits) << pswMaskLevelShift
	return v
}

// UnpackPSW decodes a 32-bit system register value. Unassigned bits are
// dropped and the mask level keeps its low four bits.
func UnpackPSW(v uint32) PSW {
	return PSW{
		Zero:                   v&PSWZero != 0,
		Sign:                   v&PSWSign != 0,
		Overflow:               v&PSWOverflow != 0,
		Carry:                  v&PSWCarry != 0,
		FPPrecisionDegradation: v&PSWFPPrecisionDegradation != 0,
		FPUnderflow:            v&PSWFPUnderflow != 0,
		FPOverflow:             v&PSWFPOverflow != 0,
		FPZeroDivision:         v&PSWFPZeroDivision != 0,
		FPInvalidOperation:     v&PSWFPInvalidOperation != 0,
		FPReservedOperand:      v&PSWFPReservedOperand != 0,
		InterruptDisable:       v&PSWInterruptDisable != 0,
		AddressTrapEnable:      v&PSWAddressTrapEnable != 0,
		ExceptionPending:       v&PSWExceptionPending != 0,
		NMIPending:             v&PSWNMIPending != 0,
		InterruptMaskLevel:     uint8((v >> pswMaskLevelShift) & pswMaskLevelBits),
	}
}

// String returns the PSW as a labelled bit pattern. Upper case means set.
func (p PSW) String() string {
	var b strings.Builder
	flag := func(set bool, on, off string) {
		if set {
			b.WriteString(on)
		} else {
			b.WriteString(off)
		}
	}
	flag(p.NMIPending, "NP", "np")
	flag(p.ExceptionPending, "EP", "ep")
	flag(p.AddressTrapEnable, "AE", "ae")
	flag(p.InterruptDisable, "ID", "id")
	b.WriteString("-")
	flag(p.Carry, "CY", "cy")
	flag(p.Overflow, "OV", "ov")
	flag(p.Sign, "S", "s")
	flag(p.Zero, "Z", "z")
	b.WriteString(" I=")
	b.WriteByte("0123456789ABCDEF"[p.InterruptMaskLevel&pswMaskLevelBits])
	return b.String()
}

func bit(set bool, mask uint32) uint32 {
	if set {
		return mask
	}
	return 0
}
