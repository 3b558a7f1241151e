// Command benchmark runs the RV32Core timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results as a JSON report
//	-no-icache  Disable instruction cache simulation
//	-config     Base simulation configuration JSON file
//	-core       Run only the short core benchmarks
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rv32core/benchmarks"
	"github.com/sarchlab/rv32core/timing/config"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	noICache := flag.Bool("no-icache", false, "Disable instruction cache simulation")
	configPath := flag.String("config", "", "Path to simulation configuration JSON file")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	harnessConfig := benchmarks.DefaultConfig()
	harnessConfig.EnableICache = !*noICache
	harnessConfig.Output = os.Stdout
	harnessConfig.Verbose = *verbose

	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		harnessConfig.Sim = cfg
	}

	harness := benchmarks.NewHarness(harnessConfig)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("RV32Core Timing Benchmark Harness")
		fmt.Println("=================================")
		fmt.Printf("I-Cache: %v\n", harnessConfig.EnableICache)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)

		summary := benchmarks.Summarize(results)
		fmt.Println("=== Summary ===")
		fmt.Printf("Passed:      %d/%d\n", summary.Passed, summary.TotalBenchmarks)
		fmt.Printf("Cycles:      %d\n", summary.TotalCycles)
		fmt.Printf("Average CPI: %.3f\n", summary.AverageCPI)
	}

	for _, r := range results {
		if !r.Passed {
			os.Exit(1)
		}
	}
}
