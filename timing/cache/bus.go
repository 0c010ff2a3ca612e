package cache

import (
	"github.com/sarchlab/v810/emu"
)

// Bus wraps an emu.Bus and runs instruction fetches through a Cache.
//
// Every access is forwarded to the wrapped bus unchanged and in order. The
// cache only adds its fetch latency to the next Cycles notification. Writes
// invalidate the written line so self-modifying code refetches.
type Bus struct {
	next  emu.Bus
	cache *Cache

	fetchPC   uint32
	fetchLeft int
	pending   uint32
	stalled   uint64
}

// NewBus creates a Bus that forwards to next.
func NewBus(next emu.Bus, cache *Cache) *Bus {
	return &Bus{
		next:  next,
		cache: cache,
	}
}

// Cache returns the cache the bus charges fetches to.
func (b *Bus) Cache() *Cache {
	return b.cache
}

// BeginFetch marks the start of the instruction at pc. The next one or two
// halfword reads at pc and pc+2 are treated as instruction fetches. Fetch
// latency left over from an instruction that never reported its cycles is
// dropped.
func (b *Bus) BeginFetch(pc uint32) {
	b.fetchPC = pc
	b.fetchLeft = 2
	b.pending = 0
}

func (b *Bus) Read8(addr uint32) uint8 {
	b.fetchLeft = 0
	return b.next.Read8(addr)
}

func (b *Bus) Read16(addr uint32) uint16 {
	if b.fetchLeft > 0 && addr == b.fetchPC {
		b.pending += b.cache.Access(addr).Latency
		b.fetchPC += 2
		b.fetchLeft--
	} else {
		b.fetchLeft = 0
	}
	return b.next.Read16(addr)
}

func (b *Bus) Read32(addr uint32) uint32 {
	b.fetchLeft = 0
	return b.next.Read32(addr)
}

func (b *Bus) Write8(addr uint32, value uint8) {
	b.invalidate(addr, 1)
	b.next.Write8(addr, value)
}

func (b *Bus) Write16(addr uint32, value uint16) {
	b.invalidate(addr, 2)
	b.next.Write16(addr, value)
}

func (b *Bus) Write32(addr uint32, value uint32) {
	b.invalidate(addr, 4)
	b.next.Write32(addr, value)
}

func (b *Bus) invalidate(addr uint32, size uint32) {
	b.fetchLeft = 0
	b.cache.Invalidate(addr)
	b.cache.Invalidate(addr + size - 1)
}

// Cycles forwards n plus any fetch latency accumulated since the last call.
func (b *Bus) Cycles(n uint32) {
	n += b.pending
	b.stalled += uint64(b.pending)
	b.pending = 0
	b.fetchLeft = 0
	b.next.Cycles(n)
}

// Stall returns the fetch latency not yet forwarded.
func (b *Bus) Stall() uint32 {
	return b.pending
}

// StallCycles returns the total fetch latency forwarded so far.
func (b *Bus) StallCycles() uint64 {
	return b.stalled
}

// ResetStall drops pending latency and clears the stall total.
func (b *Bus) ResetStall() {
	b.pending = 0
	b.stalled = 0
	b.fetchLeft = 0
}
