// Package emu provides functional V810 emulation.
package emu

// Bus is the memory and peripheral address space the processor runs
// against. The emulator never owns a Bus; one is passed into every Step.
//
// Accesses within one instruction happen in a fixed order: the first
// instruction halfword, the second halfword if the format has one, then
// any data access. Cycles is called once, after all accesses.
type Bus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32

	Write8(addr uint32, value uint8)
	Write16(addr uint32, value uint16)
	Write32(addr uint32, value uint32)

	// Cycles notifies the bus of the cycles consumed since the previous
	// notification.
	Cycles(n uint32)
}
