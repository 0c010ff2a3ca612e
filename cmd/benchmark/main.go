// Command benchmark runs the V810 timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results as a JSON report
//	-no-icache  Do not charge instruction-cache miss latency
//	-config     Path to a timing configuration JSON file
//	-core       Run only the core benchmarks
//	-v          Log each benchmark as it finishes
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/v810/benchmarks"
	"github.com/sarchlab/v810/timing/latency"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	flags.SetOutput(stderr)
	csvOutput := flags.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flags.Bool("json", false, "Output results in JSON format")
	noICache := flags.Bool("no-icache", false, "Do not charge instruction-cache miss latency")
	configPath := flags.String("config", "", "Path to timing configuration JSON file")
	coreOnly := flags.Bool("core", false, "Run only the core benchmarks")
	verbose := flags.Bool("v", false, "Verbose output")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	log := newLogger(stderr, *verbose)

	config := benchmarks.DefaultConfig()
	config.EnableICache = !*noICache
	config.Output = stdout

	if *configPath != "" {
		timing, err := latency.LoadConfig(*configPath)
		if err != nil {
			log.WithField("path", *configPath).Errorf("Error loading timing config: %v", err)
			return 1
		}
		config.Timing = timing
	}

	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	results := harness.RunAll()

	for _, r := range results {
		log.WithFields(logrus.Fields{
			"benchmark": r.Name,
			"cycles":    r.SimulatedCycles,
			"insts":     r.InstructionsRetired,
		}).Debug("benchmark finished")
	}

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			log.Errorf("Error writing JSON: %v", err)
			return 1
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		fmt.Fprintln(stdout, "V810 Timing Benchmark Harness")
		fmt.Fprintln(stdout, "=============================")
		fmt.Fprintf(stdout, "I-Cache: %v\n", config.EnableICache)
		fmt.Fprintln(stdout, "")
		harness.PrintResults(results)
	}

	code := 0
	for _, r := range results {
		if r.Error != "" {
			log.WithField("benchmark", r.Name).Errorf("Error: %s", r.Error)
			code = 1
		}
	}
	return code
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
