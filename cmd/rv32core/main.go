// Package main provides the command-line runner for the RV32I ALU core.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sarchlab/rv32core/loader"
	"github.com/sarchlab/rv32core/timing/config"
	"github.com/sarchlab/rv32core/timing/core"
	"github.com/sarchlab/rv32core/timing/driver"
)

var (
	configPath = flag.String("config", "", "Path to simulation configuration JSON file")
	listing    = flag.Bool("listing", false, "Read the program as a text listing even if it looks like an ELF file")
	verbose    = flag.Bool("v", false, "Verbose output")
	trace      = flag.Bool("trace", false, "Print every clock edge")
	maxCycles  = flag.Uint64("max-cycles", 0, "Stop after this many cycles (0 = run to completion)")
	icache     = flag.Bool("icache", false, "Enable the instruction cache")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rv32core [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nThe program is an RV32 ELF executable or a listing with one\n")
		fmt.Fprintf(os.Stderr, "instruction per line (hex word or assembly).\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loadProgram(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
		fmt.Printf("Instructions: %d\n", len(prog.Words()))
	}

	var opts []core.Option
	if cfg.Trace {
		opts = append(opts, core.WithTracer(func(r core.TraceRecord) {
			fmt.Println(formatTrace(r))
		}))
	}

	result, err := driver.Simulate(cfg, prog, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	highlight := term.IsTerminal(int(os.Stdout.Fd()))
	writeReport(os.Stdout, programPath, result, highlight)

	if result.Reason != driver.StopDrained {
		os.Exit(2)
	}
}

func loadProgram(path string) (*loader.Program, error) {
	if *listing {
		return loader.LoadListingFile(path)
	}
	return loader.Open(path)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig() (*config.SimConfig, error) {
	cfg := config.DefaultSimConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	if *trace {
		cfg.Trace = true
	}
	if *maxCycles != 0 {
		cfg.MaxCycles = *maxCycles
	}
	if *icache {
		cfg.ICacheEnabled = true
	}

	return cfg, cfg.Validate()
}
