// Package main prints usage for the V810 simulator.
//
// For the full CLI, use: go run ./cmd/v810sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("v810 - NEC V810 CPU emulator")
	fmt.Println("")
	fmt.Println("Usage: v810sim [options] <program.elf|rom.vb>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -timing    Run through the instruction-cache timing model")
	fmt.Println("  -config    Path to timing configuration JSON file")
	fmt.Println("  -trace     Print every executed instruction")
	fmt.Println("  -until     Stop when a Starlark expression over the registers is true")
	fmt.Println("  -n         Maximum number of instructions")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/v810sim' for the full CLI, or './cmd/benchmark' for timing benchmarks.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/v810sim' instead.")
	}
}
