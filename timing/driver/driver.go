// Package driver feeds a program into the core under an Akita engine.
//
// The Feeder is the instruction sequencer that sits outside the core: it
// owns the program counter, fetches one word per cycle from the program
// image (optionally through an instruction cache) and holds enable low while
// a fetch is outstanding.
package driver

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/rv32core/insts"
	"github.com/sarchlab/rv32core/loader"
	"github.com/sarchlab/rv32core/timing/cache"
	"github.com/sarchlab/rv32core/timing/config"
	"github.com/sarchlab/rv32core/timing/core"
)

// StopReason tells why a run ended.
type StopReason int

const (
	// StopRunning means the feeder has not stopped yet.
	StopRunning StopReason = iota
	// StopDrained means every instruction was presented and committed.
	StopDrained
	// StopMaxCycles means the cycle bound was reached first.
	StopMaxCycles
)

func (r StopReason) String() string {
	switch r {
	case StopRunning:
		return "running"
	case StopDrained:
		return "drained"
	case StopMaxCycles:
		return "max cycles"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Stats holds feeder statistics.
type Stats struct {
	// Fetched is the number of instructions presented to the core.
	Fetched uint64
	// FetchStalls is the number of cycles spent waiting on the cache.
	FetchStalls uint64
}

// Feeder is a ticking component that drives one core.
type Feeder struct {
	*sim.TickingComponent

	core    *core.Core
	program *loader.Program
	icache  *cache.Cache

	maxCycles uint64

	pc  uint64
	end uint64

	inFlight bool
	word     uint32
	wait     uint64

	drained bool
	reason  StopReason
	stats   Stats
}

// NewFeeder creates a feeder that runs program on c. A cache is built in
// front of the program when cfg enables one.
func NewFeeder(
	name string,
	engine sim.Engine,
	cfg *config.SimConfig,
	c *core.Core,
	program *loader.Program,
) *Feeder {
	f := &Feeder{
		core:      c,
		program:   program,
		maxCycles: cfg.MaxCycles,
		pc:        program.EntryPoint,
		end:       program.End(),
	}

	if cfg.ICacheEnabled {
		f.icache = cache.New(cfg.ICache, cache.NewProgramBacking(program))
	}

	freq := sim.Freq(cfg.FreqMHz) * sim.MHz
	f.TickingComponent = sim.NewTickingComponent(name, engine, freq, f)

	return f
}

// Tick advances the core by one clock edge. It returns false once the run is
// over, which stops the ticking.
func (f *Feeder) Tick() bool {
	if f.reason != StopRunning {
		return false
	}

	if f.drained {
		f.reason = StopDrained
		return false
	}

	if f.maxCycles > 0 && f.core.Stats().Cycles >= f.maxCycles {
		f.reason = StopMaxCycles
		return false
	}

	if !f.inFlight && f.pc < f.end && !f.startFetch() {
		// A partial word ends the text.
		f.end = f.pc
	}

	if f.inFlight {
		if f.wait > 0 {
			f.wait--
			f.stats.FetchStalls++
			f.core.Step(core.Inputs{Enable: false})
			return true
		}

		f.core.StepWord(f.word, true)
		f.stats.Fetched++
		f.inFlight = false
		f.pc += loader.WordSize
		return true
	}

	// The last instruction is still in the latch; one more edge commits it.
	f.core.StepWord(insts.NOP, true)
	f.drained = true
	return true
}

// startFetch begins fetching the word at pc. It returns false when pc does
// not hold a whole executable word.
func (f *Feeder) startFetch() bool {
	word, ok := f.program.Fetch(f.pc)
	if !ok {
		return false
	}

	f.inFlight = true
	f.word = word
	f.wait = 0

	if f.icache == nil {
		return true
	}

	word, result := f.icache.ReadWord(f.pc)
	f.word = word
	if result.Latency > 1 {
		f.wait = result.Latency - 1
	}
	return true
}

// Core returns the driven core.
func (f *Feeder) Core() *core.Core {
	return f.core
}

// Cache returns the instruction cache, or nil when it is disabled.
func (f *Feeder) Cache() *cache.Cache {
	return f.icache
}

// PC returns the address of the next instruction to fetch.
func (f *Feeder) PC() uint64 {
	return f.pc
}

// Reason returns why the feeder stopped.
func (f *Feeder) Reason() StopReason {
	return f.reason
}

// Stats returns feeder statistics.
func (f *Feeder) Stats() Stats {
	return f.stats
}

// Result summarises a finished run.
type Result struct {
	Reason    StopReason
	Registers [32]uint32
	Core      core.Stats
	Feeder    Stats
	// Cache is nil when the run had no instruction cache.
	Cache   *cache.Statistics
	SimTime sim.VTimeInSec
}

// Simulate runs program to completion on a fresh core under a serial engine.
func Simulate(cfg *config.SimConfig, program *loader.Program, opts ...core.Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := program.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}

	engine := sim.NewSerialEngine()
	c := core.NewCore(opts...)
	f := NewFeeder("RV32Core.Feeder", engine, cfg, c, program)

	f.TickLater()
	if err := engine.Run(); err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	result := &Result{
		Reason:    f.Reason(),
		Registers: c.Registers(),
		Core:      c.Stats(),
		Feeder:    f.Stats(),
		SimTime:   engine.CurrentTime(),
	}
	if f.icache != nil {
		stats := f.icache.Stats()
		result.Cache = &stats
	}

	return result, nil
}
