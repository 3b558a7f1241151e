// Package benchmarks provides timing benchmark infrastructure for the RV32I
// core: a set of straight-line ALU workloads and a harness that runs them
// through the Akita driver and reports cycle counts.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sarchlab/rv32core/loader"
	"github.com/sarchlab/rv32core/timing/config"
	"github.com/sarchlab/rv32core/timing/driver"
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the number of clock edges the core saw
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of program words presented
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// StallCycles is the number of edges with enable low
	StallCycles uint64 `json:"stall_cycles"`

	// RegisterWrites is the number of edges that changed a register
	RegisterWrites uint64 `json:"register_writes"`

	// ICacheHits/Misses (if cache enabled)
	ICacheHits   uint64 `json:"icache_hits,omitempty"`
	ICacheMisses uint64 `json:"icache_misses,omitempty"`

	// Passed reports whether every expected register value matched
	Passed bool `json:"passed"`

	// Mismatches lists the registers that did not match
	Mismatches []string `json:"mismatches,omitempty"`

	// Err is set when the simulation could not run
	Err string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Program is the RV32I machine code to execute, loaded at address 0
	Program []uint32

	// Expect maps register indices to their values after the run
	Expect map[uint8]uint32
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableICache enables instruction cache simulation
	EnableICache bool

	// Sim is the base simulation configuration; nil means the default
	Sim *config.SimConfig

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableICache: true,
		Output:       os.Stdout,
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
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

func (h *Harness) simConfig() *config.SimConfig {
	var cfg *config.SimConfig
	if h.config.Sim != nil {
		cfg = h.config.Sim.Clone()
	} else {
		cfg = config.DefaultSimConfig()
	}
	cfg.ICacheEnabled = h.config.EnableICache
	return cfg
}

func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	program := loader.NewProgram(0, bench.Program)

	start := time.Now()
	run, err := driver.Simulate(h.simConfig(), program)
	result.WallTime = time.Since(start)

	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.SimulatedCycles = run.Core.Cycles
	result.InstructionsRetired = run.Feeder.Fetched
	result.StallCycles = run.Core.Stalls
	result.RegisterWrites = run.Core.Writes
	if result.InstructionsRetired > 0 {
		result.CPI = float64(result.SimulatedCycles) / float64(result.InstructionsRetired)
	}
	if run.Cache != nil {
		result.ICacheHits = run.Cache.Hits
		result.ICacheMisses = run.Cache.Misses
	}

	if run.Reason != driver.StopDrained {
		result.Err = fmt.Sprintf("stopped: %s", run.Reason)
		return result
	}

	result.Mismatches = checkRegisters(run.Registers, bench.Expect)
	result.Passed = len(result.Mismatches) == 0

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d cycles\n", bench.Name, result.SimulatedCycles)
	}

	return result
}

func checkRegisters(regs [32]uint32, expect map[uint8]uint32) []string {
	indices := make([]int, 0, len(expect))
	for r := range expect {
		indices = append(indices, int(r))
	}
	sort.Ints(indices)

	var mismatches []string
	for _, i := range indices {
		want := expect[uint8(i)]
		if i >= len(regs) {
			mismatches = append(mismatches, fmt.Sprintf("x%d: no such register", i))
			continue
		}
		if regs[i] != want {
			mismatches = append(mismatches,
				fmt.Sprintf("x%d: got 0x%08x, want 0x%08x", i, regs[i], want))
		}
	}
	return mismatches
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	out := h.config.Output
	_, _ = fmt.Fprintln(out, "=== RV32Core Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(out, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(out, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(out, "  Description: %s\n", r.Description)
		if r.Err != "" {
			_, _ = fmt.Fprintf(out, "  Error: %s\n", r.Err)
			_, _ = fmt.Fprintln(out, "")
			continue
		}
		_, _ = fmt.Fprintf(out, "  Passed: %v\n", r.Passed)
		for _, m := range r.Mismatches {
			_, _ = fmt.Fprintf(out, "    %s\n", m)
		}
		_, _ = fmt.Fprintln(out, "  --- Timing ---")
		_, _ = fmt.Fprintf(out, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(out, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(out, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(out, "  Stall Cycles:         %d\n", r.StallCycles)
		_, _ = fmt.Fprintf(out, "  Register Writes:      %d\n", r.RegisterWrites)

		if r.ICacheHits > 0 || r.ICacheMisses > 0 {
			_, _ = fmt.Fprintln(out, "  --- I-Cache ---")
			_, _ = fmt.Fprintf(out, "  Hits:   %d\n", r.ICacheHits)
			_, _ = fmt.Fprintf(out, "  Misses: %d\n", r.ICacheMisses)
		}

		_, _ = fmt.Fprintf(out, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(out, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,stalls,writes,icache_hits,icache_misses,passed")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d,%v\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.StallCycles,
			r.RegisterWrites,
			r.ICacheHits,
			r.ICacheMisses,
			r.Passed,
		)
	}
}

// BenchmarkReport is the top-level JSON document written by PrintJSON.
type BenchmarkReport struct {
	Metadata ReportMetadata    `json:"metadata"`
	Results  []BenchmarkResult `json:"results"`
	Summary  ReportSummary     `json:"summary"`
}

// ReportMetadata records when and how a report was produced.
type ReportMetadata struct {
	Timestamp     string `json:"timestamp"`
	ICacheEnabled bool   `json:"icache_enabled"`
	FreqMHz       uint64 `json:"freq_mhz"`
}

// ReportSummary aggregates every result in a report.
type ReportSummary struct {
	TotalBenchmarks   int     `json:"total_benchmarks"`
	Passed            int     `json:"passed"`
	TotalCycles       uint64  `json:"total_cycles"`
	TotalInstructions uint64  `json:"total_instructions"`
	AverageCPI        float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// Summarize aggregates results.
func Summarize(results []BenchmarkResult) ReportSummary {
	s := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		s.TotalCycles += r.SimulatedCycles
		s.TotalInstructions += r.InstructionsRetired
		s.TotalWallTime += r.WallTime
		if r.Passed {
			s.Passed++
		}
	}
	if s.TotalInstructions > 0 {
		s.AverageCPI = float64(s.TotalCycles) / float64(s.TotalInstructions)
	}
	return s
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			ICacheEnabled: h.config.EnableICache,
			FreqMHz:       h.simConfig().FreqMHz,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
