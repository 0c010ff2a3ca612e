// Package emu provides functional V810 emulation.
package emu

// LoadStoreUnit implements V810 load and store operations. Port I/O
// instructions share the same paths. Every access goes through the Bus
// passed in by the caller.
type LoadStoreUnit struct {
	regFile *RegFile
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file.
func NewLoadStoreUnit(regFile *RegFile) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile}
}

// Address computes r1 + sext(disp16).
func (lsu *LoadStoreUnit) Address(reg1 uint8, disp16 int16) uint32 {
	return lsu.regFile.ReadReg(reg1) + uint32(int32(disp16))
}

// LDB loads a byte with sign extension: r2 = sext(mem8[r1 + disp])
func (lsu *LoadStoreUnit) LDB(bus Bus, reg1, reg2 uint8, disp16 int16) {
	value := bus.Read8(lsu.Address(reg1, disp16))
	lsu.regFile.WriteReg(reg2, uint32(int32(int8(value))))
}

// LDH loads a halfword with sign extension: r2 = sext(mem16[r1 + disp])
func (lsu *LoadStoreUnit) LDH(bus Bus, reg1, reg2 uint8, disp16 int16) {
	value := bus.Read16(lsu.Address(reg1, disp16))
	lsu.regFile.WriteReg(reg2, uint32(int32(int16(value))))
}

// LDW loads a word: r2 = mem32[r1 + disp]
func (lsu *LoadStoreUnit) LDW(bus Bus, reg1, reg2 uint8, disp16 int16) {
	value := bus.Read32(lsu.Address(reg1, disp16))
	lsu.regFile.WriteReg(reg2, value)
}

// STB stores the low byte of r2: mem8[r1 + disp] = r2[7:0]
func (lsu *LoadStoreUnit) STB(bus Bus, reg1, reg2 uint8, disp16 int16) {
	bus.Write8(lsu.Address(reg1, disp16), uint8(lsu.regFile.ReadReg(reg2)))
}

// STH stores the low halfword of r2: mem16[r1 + disp] = r2[15:0]
func (lsu *LoadStoreUnit) STH(bus Bus, reg1, reg2 uint8, disp16 int16) {
	bus.Write16(lsu.Address(reg1, disp16), uint16(lsu.regFile.ReadReg(reg2)))
}

// STW stores r2: mem32[r1 + disp] = r2
func (lsu *LoadStoreUnit) STW(bus Bus, reg1, reg2 uint8, disp16 int16) {
	bus.Write32(lsu.Address(reg1, disp16), lsu.regFile.ReadReg(reg2))
}
