// Package main provides a profiling wrapper for rv32core to find hot spots in
// the core model.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/sarchlab/rv32core/loader"
	"github.com/sarchlab/rv32core/timing/config"
	"github.com/sarchlab/rv32core/timing/core"
	"github.com/sarchlab/rv32core/timing/driver"
)

var (
	timing     = flag.Bool("timing", false, "Run under the Akita engine instead of stepping the core directly")
	icache     = flag.Bool("icache", false, "Enable the instruction cache (timing mode only)")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	duration   = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	repeat     = flag.Int("repeat", 1000, "number of times to run the program")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	prof := &profiler{}
	if *cpuProfile != "" {
		if err := prof.startCPU(*cpuProfile); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
	}

	programPath := flag.Arg(0)

	prog, err := loader.Open(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		prof.exit(1)
	}

	fmt.Printf("Loaded: %s\n", programPath)
	fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)

	start := time.Now()

	watchdog(*duration, prof)

	var cycles uint64
	if *timing {
		cycles, err = runTimingProfile(prog)
	} else {
		cycles = runCoreProfile(prog)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		prof.exit(1)
	}

	elapsed := time.Since(start)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			prof.exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	prof.stopCPU()

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Runs: %d\n", *repeat)
	fmt.Printf("Cycles simulated: %d\n", cycles)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if cycles > 0 {
		fmt.Printf("Cycles/second: %.0f\n", float64(cycles)/elapsed.Seconds())
	}
}

// osExit is replaced in tests.
var osExit = os.Exit

// profiler owns the CPU profile so that every exit path can flush it.
type profiler struct {
	mu   sync.Mutex
	file *os.File
}

func (p *profiler) startCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}

	p.mu.Lock()
	p.file = f
	p.mu.Unlock()
	return nil
}

// stopCPU flushes and closes the CPU profile. It is safe to call more than
// once.
func (p *profiler) stopCPU() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = p.file.Close()
	p.file = nil
}

func (p *profiler) exit(code int) {
	p.stopCPU()
	osExit(code)
}

// watchdog ends the process with status 2 once d has passed.
func watchdog(d time.Duration, p *profiler) *time.Timer {
	return time.AfterFunc(d, func() {
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", d)
		p.exit(2)
	})
}

// runCoreProfile steps a bare core through the program words.
func runCoreProfile(prog *loader.Program) uint64 {
	words := prog.Words()

	var cycles uint64
	for i := 0; i < *repeat; i++ {
		c := core.NewCore()
		c.Run(words)
		cycles += c.Stats().Cycles
	}

	return cycles
}

// runTimingProfile runs the program through the feeder and engine.
func runTimingProfile(prog *loader.Program) (uint64, error) {
	cfg := config.DefaultSimConfig()
	cfg.ICacheEnabled = *icache

	var cycles uint64
	for i := 0; i < *repeat; i++ {
		result, err := driver.Simulate(cfg, prog)
		if err != nil {
			return cycles, err
		}
		cycles += result.Core.Cycles
	}

	return cycles, nil
}
