// Package benchmarks provides timing benchmark infrastructure for calibrating
// the V810 timing model.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/v810/emu"
	"github.com/sarchlab/v810/timing/cache"
	"github.com/sarchlab/v810/timing/core"
	"github.com/sarchlab/v810/timing/latency"
)

const (
	// ProgramBase is where benchmark programs are loaded (cartridge ROM).
	ProgramBase uint32 = 0x07000000

	// ResultRegister holds each benchmark's result when it halts.
	ResultRegister = 10

	maxInstructions = 1000000
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the total cycle count from the timing model
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of completed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// StallCycles is the number of cycles lost to instruction-cache misses
	StallCycles uint64 `json:"stall_cycles"`

	// BranchesTaken counts taken branches and jumps
	BranchesTaken uint64 `json:"branches_taken"`

	// ICacheHits/Misses
	ICacheHits   uint64 `json:"icache_hits"`
	ICacheMisses uint64 `json:"icache_misses"`

	// Result is the value of r10 when the program halted
	Result uint32 `json:"result"`

	// Error is set when the program did not reach its halt loop
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the emulator state (e.g., initialize registers, memory)
	Setup func(regFile *emu.RegFile, memory *emu.Memory)

	// Program is the V810 machine code to execute. It must end with
	// EncodeHalt.
	Program []byte

	// ExpectedResult is the expected value of r10 (for validation)
	ExpectedResult uint32
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableICache charges instruction-cache miss latency
	EnableICache bool

	// Timing overrides the default instruction latencies
	Timing *latency.TimingConfig

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableICache: true,
		Timing:       latency.DefaultTimingConfig(),
		Output:       os.Stdout,
		Verbose:      false,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d cycles\n", result.Name, result.SimulatedCycles)
		}
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark until it reaches its halt loop.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	memory := emu.NewMemory()
	memory.LoadProgram(ProgramBase, bench.Program)
	haltPC := ProgramBase + uint32(len(bench.Program)) - 2

	cacheConfig := cache.DefaultInstructionCacheConfig()
	if !h.config.EnableICache {
		cacheConfig.HitLatency = 0
		cacheConfig.MissLatency = 0
	}

	c, err := core.NewCore(memory,
		core.WithCacheConfig(cacheConfig),
		core.WithTimingConfig(h.config.Timing),
		core.WithEmulatorOptions(emu.WithMaxInstructions(maxInstructions)),
		core.WithStopCondition(func(regFile *emu.RegFile) (bool, error) {
			return regFile.PC == haltPC, nil
		}),
	)
	if err != nil {
		return BenchmarkResult{
			Name:        bench.Name,
			Description: bench.Description,
			Error:       err.Error(),
		}
	}
	c.SetPC(ProgramBase)

	if bench.Setup != nil {
		bench.Setup(c.Emulator.RegFile(), memory)
	}

	start := time.Now()
	err = c.Run()
	wallTime := time.Since(start)

	stats := c.Stats()
	result := BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		SimulatedCycles:     stats.Cycles,
		InstructionsRetired: stats.Instructions,
		CPI:                 stats.CPI(),
		StallCycles:         stats.Stalls,
		BranchesTaken:       stats.BranchesTaken,
		ICacheHits:          stats.CacheHits,
		ICacheMisses:        stats.CacheMisses,
		Result:              c.Emulator.RegGPR(ResultRegister),
		WallTime:            wallTime,
	}
	if err != nil {
		result.Error = err.Error()
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== V810 Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Result: 0x%08x\n", r.Result)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  Stall Cycles:         %d\n", r.StallCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Branches Taken:       %d\n", r.BranchesTaken)
		_, _ = fmt.Fprintln(h.config.Output, "  --- I-Cache ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Hits:   %d\n", r.ICacheHits)
		_, _ = fmt.Fprintf(h.config.Output, "  Misses: %d\n", r.ICacheMisses)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,stalls,branches_taken,icache_hits,icache_misses,result")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d,%d\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.StallCycles,
			r.BranchesTaken,
			r.ICacheHits,
			r.ICacheMisses,
			r.Result,
		)
	}
}

// BenchmarkReport is the JSON document written by PrintJSON.
type BenchmarkReport struct {
	Metadata ReportMetadata    `json:"metadata"`
	Results  []BenchmarkResult `json:"results"`
	Summary  ReportSummary     `json:"summary"`
}

// ReportMetadata describes how the results were produced.
type ReportMetadata struct {
	Timestamp     string                `json:"timestamp"`
	ICacheEnabled bool                  `json:"icache_enabled"`
	Timing        *latency.TimingConfig `json:"timing"`
}

// ReportSummary aggregates all results.
type ReportSummary struct {
	TotalBenchmarks   int     `json:"total_benchmarks"`
	TotalCycles       uint64  `json:"total_cycles"`
	TotalInstructions uint64  `json:"total_instructions"`
	AverageCPI        float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	var totalCycles, totalInstructions uint64
	var totalWallTime time.Duration
	for _, r := range results {
		totalCycles += r.SimulatedCycles
		totalInstructions += r.InstructionsRetired
		totalWallTime += r.WallTime
	}

	avgCPI := float64(0)
	if totalInstructions > 0 {
		avgCPI = float64(totalCycles) / float64(totalInstructions)
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			ICacheEnabled: h.config.EnableICache,
			Timing:        h.config.Timing,
		},
		Results: results,
		Summary: ReportSummary{
			TotalBenchmarks:   len(results),
			TotalCycles:       totalCycles,
			TotalInstructions: totalInstructions,
			AverageCPI:        avgCPI,
			TotalWallTime:     totalWallTime,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
