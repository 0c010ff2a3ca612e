package loader

import (
	"fmt"
	"os"

	"github.com/sarchlab/v810/emu"
)

const (
	// ROMBase is where cartridge ROM is mapped on the Virtual Boy.
	ROMBase uint32 = 0x07000000

	// MaxROMSize is the size of the cartridge ROM window.
	MaxROMSize = 16 * 1024 * 1024
)

// LoadROM reads a raw Virtual Boy ROM image.
//
// The cartridge bus ignores the upper address bits, so the image repeats
// through the top of the address space and the reset vector lands 16 bytes
// before its end. The returned Program maps the image at ROMBase and again
// at the top of memory, and starts at emu.ResetVector.
func LoadROM(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM file: %w", err)
	}

	return ParseROM(data)
}

// ParseROM builds a Program from a ROM image already in memory.
func ParseROM(data []byte) (*Program, error) {
	size := len(data)
	if size < 16 {
		return nil, fmt.Errorf("ROM image too small: %d bytes", size)
	}
	if size > MaxROMSize {
		return nil, fmt.Errorf("ROM image too large: %d bytes", size)
	}
	if size&(size-1) != 0 {
		return nil, fmt.Errorf("ROM size %d is not a power of two", size)
	}

	flags := SegmentFlagRead | SegmentFlagExecute

	return &Program{
		EntryPoint: emu.ResetVector,
		Segments: []Segment{
			{VirtAddr: ROMBase, Data: data, MemSize: uint32(size), Flags: flags},
			{VirtAddr: 0 - uint32(size), Data: data, MemSize: uint32(size), Flags: flags},
		},
	}, nil
}
