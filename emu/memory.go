// Package emu provides functional V810 emulation.
package emu

const (
	pageBits = 12
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

// Memory is a sparse, little-endian, flat 32-bit address space. It
// implements Bus and accumulates the cycles reported to it. Unwritten
// addresses read as zero.
type Memory struct {
	pages  map[uint32]*[pageSize]byte
	cycles uint64
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{
		pages: make(map[uint32]*[pageSize]byte),
	}
}

func (m *Memory) page(addr uint32, create bool) *[pageSize]byte {
	p := m.pages[addr>>pageBits]
	if p == nil && create {
		p = new([pageSize]byte)
		m.pages[addr>>pageBits] = p
	}
	return p
}

// Read8 reads a byte.
func (m *Memory) Read8(addr uint32) uint8 {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr&pageMask]
}

// Read16 reads a little-endian halfword.
func (m *Memory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Read32 reads a little-endian word.
func (m *Memory) Read32(addr uint32) uint32 {
	return uint32(m.Read16(addr)) | uint32(m.Read16(addr+2))<<16
}

// Write8 writes a byte.
func (m *Memory) Write8(addr uint32, value uint8) {
	m.page(addr, true)[addr&pageMask] = value
}

// Write16 writes a little-endian halfword.
func (m *Memory) Write16(addr uint32, value uint16) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
}

// Write32 writes a little-endian word.
func (m *Memory) Write32(addr uint32, value uint32) {
	m.Write16(addr, uint16(value))
	m.Write16(addr+2, uint16(value>>16))
}

// Cycles adds n to the cycle counter.
func (m *Memory) Cycles(n uint32) {
	m.cycles += uint64(n)
}

// CycleCount returns the total number of cycles reported so far.
func (m *Memory) CycleCount() uint64 {
	return m.cycles
}

// LoadProgram copies data into memory starting at addr. Addresses wrap at
// the top of the 32-bit space.
func (m *Memory) LoadProgram(addr uint32, data []byte) {
	for i, b := range data {
		m.Write8(addr+uint32(i), b)
	}
}
