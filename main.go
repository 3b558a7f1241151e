// Package main provides the entry point for rv32core.
// rv32core is a cycle-level model of a single-cycle RV32I ALU core built on
// Akita.
//
// For the full CLI, use: go run ./cmd/rv32core
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv32core - RV32I ALU Core Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: rv32core [options] <program>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to simulation configuration JSON file")
	fmt.Println("  -listing     Read the program as a text listing")
	fmt.Println("  -icache      Enable the instruction cache")
	fmt.Println("  -max-cycles  Stop after this many cycles")
	fmt.Println("  -trace       Print every clock edge")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv32core' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv32core' instead.")
	}
}
