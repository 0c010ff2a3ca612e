// Package main provides the entry point for the V810 simulator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/v810/debug"
	"github.com/sarchlab/v810/emu"
	"github.com/sarchlab/v810/loader"
	"github.com/sarchlab/v810/timing/core"
	"github.com/sarchlab/v810/timing/latency"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	timing     bool
	configPath string
	trace      bool
	until      string
	maxInsts   uint64
	verbose    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	flags := flag.NewFlagSet("v810sim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&opts.timing, "timing", false, "Enable timing simulation mode")
	flags.StringVar(&opts.configPath, "config", "", "Path to timing configuration JSON file")
	flags.BoolVar(&opts.trace, "trace", false, "Print every executed instruction")
	flags.StringVar(&opts.until, "until", "", "Stop when this expression is true, e.g. 'pc == 0x07000100'")
	flags.Uint64Var(&opts.maxInsts, "n", 1000000, "Maximum number of instructions (0 for no limit)")
	flags.BoolVar(&opts.verbose, "v", false, "Verbose output")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: v810sim [options] <program.elf|rom.vb>\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}

	log := newLogger(stderr, opts.verbose)

	if flags.NArg() < 1 {
		flags.Usage()
		return 2
	}

	programPath := flags.Arg(0)

	prog, err := loadProgram(programPath)
	if err != nil {
		log.WithField("path", programPath).Errorf("Error loading program: %v", err)
		return 1
	}

	log.WithFields(logrus.Fields{
		"path":     programPath,
		"entry":    fmt.Sprintf("0x%08x", prog.EntryPoint),
		"segments": len(prog.Segments),
	}).Debug("loaded program")

	var stop emu.StopCondition
	if opts.until != "" {
		cond, err := debug.Parse(opts.until)
		if err != nil {
			log.Errorf("Error parsing -until: %v", err)
			return 1
		}
		stop = cond.StopCondition()
		log.WithField("until", cond.String()).Debug("stop condition set")
	}

	emuOpts := []emu.EmulatorOption{emu.WithMaxInstructions(opts.maxInsts)}
	if opts.trace {
		emuOpts = append(emuOpts, emu.WithTrace(stdout))
	}

	memory := emu.NewMemory()
	prog.LoadInto(memory)

	if opts.timing {
		return runTiming(opts, prog, memory, stop, emuOpts, stdout, log)
	}
	return runEmulation(opts, prog, memory, stop, emuOpts, stdout, log)
}

// loadProgram picks the loader by extension: .vb images are raw ROMs,
// anything else must be an ELF file.
func loadProgram(path string) (*loader.Program, error) {
	if strings.EqualFold(filepath.Ext(path), ".vb") {
		return loader.LoadROM(path)
	}
	return loader.Load(path)
}

// runEmulation runs the program in functional emulation mode.
func runEmulation(
	opts options,
	prog *loader.Program,
	memory *emu.Memory,
	stop emu.StopCondition,
	emuOpts []emu.EmulatorOption,
	stdout io.Writer,
	log *logrus.Logger,
) int {
	if stop != nil {
		emuOpts = append(emuOpts, emu.WithStopCondition(stop))
	}

	emulator := emu.NewEmulator(emuOpts...)
	emulator.RegFile().PC = prog.EntryPoint

	err := emulator.Run(memory)
	code := exitCode(err, log)

	if opts.verbose {
		fmt.Fprintf(stdout, "Instructions executed: %d\n", emulator.InstructionCount())
		fmt.Fprintf(stdout, "Cycles: %d\n", memory.CycleCount())
	}
	dumpRegisters(stdout, emulator.RegFile())

	return code
}

// runTiming runs the program through the instruction-cache timing model.
func runTiming(
	opts options,
	prog *loader.Program,
	memory *emu.Memory,
	stop emu.StopCondition,
	emuOpts []emu.EmulatorOption,
	stdout io.Writer,
	log *logrus.Logger,
) int {
	timingConfig := latency.DefaultTimingConfig()
	if opts.configPath != "" {
		var err error
		timingConfig, err = latency.LoadConfig(opts.configPath)
		if err != nil {
			log.WithField("path", opts.configPath).Errorf("Error loading timing config: %v", err)
			return 1
		}
	}
	c, err := core.NewCore(memory,
		core.WithTimingConfig(timingConfig),
		core.WithEmulatorOptions(emuOpts...),
		core.WithStopCondition(stop),
	)
	if err != nil {
		log.Errorf("Error creating timing core: %v", err)
		return 1
	}
	c.SetPC(prog.EntryPoint)

	err = c.Run()
	code := exitCode(err, log)

	stats := c.Stats()
	cycles := stats.Cycles
	if cycles == 0 {
		cycles = 1
	}

	fmt.Fprintf(stdout, "\n")
	fmt.Fprintf(stdout, "Total Instructions: %d\n", stats.Instructions)
	fmt.Fprintf(stdout, "Total Cycles: %d\n", stats.Cycles)
	fmt.Fprintf(stdout, "CPI: %.2f\n", stats.CPI())
	fmt.Fprintf(stdout, "\n")
	fmt.Fprintf(stdout, "Instruction cache:\n")
	fmt.Fprintf(stdout, "  Hits:   %d\n", stats.CacheHits)
	fmt.Fprintf(stdout, "  Misses: %d\n", stats.CacheMisses)
	fmt.Fprintf(stdout, "  Stalls: %4d cycles (%5.1f%%)\n",
		stats.Stalls, 100.0*float64(stats.Stalls)/float64(cycles))
	fmt.Fprintf(stdout, "Branches taken: %d\n", stats.BranchesTaken)
	fmt.Fprintf(stdout, "\n")
	dumpRegisters(stdout, c.Emulator.RegFile())

	return code
}

// exitCode maps the error that ended a run to a process exit code. Hitting
// the instruction limit is a normal end.
func exitCode(err error, log *logrus.Logger) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, emu.ErrMaxInstructions) {
		log.Debug(err)
		return 0
	}
	log.Errorf("Error: %v", err)
	return 1
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func dumpRegisters(w io.Writer, regFile *emu.RegFile) {
	fmt.Fprintf(w, "pc  %08x  psw %08x  %s\n", regFile.PC, regFile.ReadPSW(), regFile.PSW)
	for i := uint8(0); i < 32; i++ {
		sep := "  "
		if i%4 == 3 {
			sep = "\n"
		}
		fmt.Fprintf(w, "r%-2d %08x%s", i, regFile.ReadReg(i), sep)
	}
}
