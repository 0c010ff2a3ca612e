// Package core provides the cycle-level V810 core model.
// It drives the functional emulator through an instruction-cache model
// and a configurable latency table.
package core

import (
	"fmt"

	"github.com/sarchlab/v810/emu"
	"github.com/sarchlab/v810/insts"
	"github.com/sarchlab/v810/timing/cache"
	"github.com/sarchlab/v810/timing/latency"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of cycles lost to instruction-cache misses.
	Stalls uint64
	// BranchesTaken counts conditional branches, BR and JMP that
	// redirected the PC.
	BranchesTaken uint64
	// CacheHits and CacheMisses count instruction fetch lookups.
	CacheHits   uint64
	CacheMisses uint64
}

// CPI returns cycles per retired instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core is a V810 core with timing.
type Core struct {
	// Emulator executes the instructions.
	Emulator *emu.Emulator

	bus    *cache.Bus
	icache *cache.Cache

	stop StopCondition

	cycles        uint64
	branchesTaken uint64
	err           error
}

// StopCondition is checked after every instruction; see emu.StopCondition.
type StopCondition = emu.StopCondition

type options struct {
	cacheConfig  cache.Config
	timingConfig *latency.TimingConfig
	emuOpts      []emu.EmulatorOption
	stop         StopCondition
}

// Option configures a Core.
type Option func(*options)

// WithCacheConfig sets the instruction-cache geometry.
func WithCacheConfig(config cache.Config) Option {
	return func(o *options) {
		o.cacheConfig = config
	}
}

// WithTimingConfig sets the per-class instruction latencies.
func WithTimingConfig(config *latency.TimingConfig) Option {
	return func(o *options) {
		o.timingConfig = config
	}
}

// WithEmulatorOptions passes options through to the emulator.
func WithEmulatorOptions(opts ...emu.EmulatorOption) Option {
	return func(o *options) {
		o.emuOpts = append(o.emuOpts, opts...)
	}
}

// WithStopCondition sets the condition Run checks after every instruction.
func WithStopCondition(stop StopCondition) Option {
	return func(o *options) {
		o.stop = stop
	}
}

// NewCore creates a new Core running against bus. It fails if the cache
// geometry or the timing config is invalid.
func NewCore(bus emu.Bus, opts ...Option) (*Core, error) {
	o := options{
		cacheConfig:  cache.DefaultInstructionCacheConfig(),
		timingConfig: latency.DefaultTimingConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.timingConfig == nil {
		o.timingConfig = latency.DefaultTimingConfig()
	}
	if err := o.timingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config: %w", err)
	}

	icache, err := cache.New(o.cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}
	emuOpts := append([]emu.EmulatorOption{
		emu.WithCycleTable(latency.NewTableWithConfig(o.timingConfig)),
	}, o.emuOpts...)

	return &Core{
		Emulator: emu.NewEmulator(emuOpts...),
		bus:      cache.NewBus(bus, icache),
		icache:   icache,
		stop:     o.stop,
	}, nil
}

// SetPC sets the program counter.
func (c *Core) SetPC(pc uint32) {
	c.Emulator.RegFile().PC = pc
}

// PC returns the program counter.
func (c *Core) PC() uint32 {
	return c.Emulator.RegPC()
}

// Tick executes one instruction. The core halts on the first step error.
// Fetch latency spent before a failing step is still charged.
func (c *Core) Tick() emu.StepResult {
	if c.err != nil {
		return emu.StepResult{Err: c.err}
	}

	stalled := c.bus.StallCycles()
	c.bus.BeginFetch(c.Emulator.RegPC())

	result := c.Emulator.Step(c.bus)
	if result.Err != nil {
		c.err = result.Err
		if c.bus.Stall() > 0 {
			c.bus.Cycles(0)
			c.cycles += c.bus.StallCycles() - stalled
		}
		return result
	}

	c.cycles += uint64(result.Cycles) + c.bus.StallCycles() - stalled
	if result.Taken || result.Inst.Op == insts.OpJMP {
		c.branchesTaken++
	}

	return result
}

// Halted returns true once a step has failed.
func (c *Core) Halted() bool {
	return c.err != nil
}

// Err returns the error that halted the core.
func (c *Core) Err() error {
	return c.err
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	cacheStats := c.icache.Stats()
	return Stats{
		Cycles:        c.cycles,
		Instructions:  c.Emulator.InstructionCount(),
		Stalls:        c.bus.StallCycles(),
		BranchesTaken: c.branchesTaken,
		CacheHits:     cacheStats.Hits,
		CacheMisses:   cacheStats.Misses,
	}
}

// Run executes until a step fails or the stop condition holds. It returns
// nil when stopped by the condition.
func (c *Core) Run() error {
	for {
		if result := c.Tick(); result.Err != nil {
			return result.Err
		}

		if c.stop != nil {
			done, err := c.stop(c.Emulator.RegFile())
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// RunInstructions executes at most n instructions.
// Returns true if still running, false if halted.
func (c *Core) RunInstructions(n uint64) bool {
	for i := uint64(0); i < n && !c.Halted(); i++ {
		c.Tick()
	}
	return !c.Halted()
}

// Reset returns the core to its power-on state and clears statistics.
func (c *Core) Reset() {
	c.Emulator.Reset()
	c.icache.Reset()
	c.bus.ResetStall()
	c.cycles = 0
	c.branchesTaken = 0
	c.err = nil
}
