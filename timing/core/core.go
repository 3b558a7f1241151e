// Package core provides the cycle-level model of the RV32I ALU core.
//
// One call to Next (or Core.Step) is one rising clock edge. All combinational
// signals are computed from the previous state first, then the instruction
// latch and the 32 register cells commit together.
package core

import (
	"github.com/sarchlab/rv32core/bitvec"
	"github.com/sarchlab/rv32core/emu"
	"github.com/sarchlab/rv32core/insts"
)

// State is everything the core latches between edges.
type State struct {
	Latch InstructionLatch
	Regs  emu.RegFile
}

// NewState returns the reset state.
func NewState() State {
	return State{Regs: emu.NewRegFile()}
}

// Inputs are the signals presented to the core for one edge.
type Inputs struct {
	// Instruction must be 32 bits wide whenever Enable is set.
	Instruction bitvec.Word
	Reset       bool
	Enable      bool
}

// Signals are the combinational values of one cycle.
type Signals struct {
	Control      insts.Control
	Operands     emu.ReadPorts
	ALUResult    bitvec.Word
	WriteEnables emu.WriteEnables
}

// Evaluate computes the combinational signals of s while enable is held at
// the given level.
func Evaluate(s State, enable bool) Signals {
	ctrl := s.Latch.Control(insts.NewDecoder(), enable)
	ports := emu.NewReadMux().Evaluate(s.Regs, ctrl.RS1, ctrl.RS2)
	result := emu.NewALU().Evaluate(emu.ALUInput{
		RS1:   ports.RS1,
		RS2:   ports.RS2,
		Imm:   ctrl.Imm12,
		I2Sel: ctrl.ALUImmediateMode,
		Op:    ctrl.Func3,
	})

	return Signals{
		Control:      ctrl,
		Operands:     ports,
		ALUResult:    result,
		WriteEnables: emu.Demux(ctrl.RD, ctrl.ALUEnable),
	}
}

// Next returns the state after one rising edge together with the signals
// that drove it. s is not modified.
func Next(s State, in Inputs) (State, Signals) {
	sig := Evaluate(s, in.Enable)

	next := State{
		Latch: s.Latch.Next(in.Instruction, in.Reset, in.Enable),
		Regs: s.Regs.Next(emu.RegWrite{
			Reset:   in.Reset,
			Enables: sig.WriteEnables,
			Data:    sig.ALUResult,
		}),
	}

	return next, sig
}

// Stats holds execution statistics for the core.
type Stats struct {
	// Cycles is the number of clock edges applied.
	Cycles uint64
	// Writes is the number of edges that committed a register.
	Writes uint64
	// NoOps is the number of enabled edges that wrote nothing.
	NoOps uint64
	// Stalls is the number of edges with enable low.
	Stalls uint64
	// Resets is the number of edges with reset asserted.
	Resets uint64
}

// TraceRecord describes one clock edge.
type TraceRecord struct {
	Cycle uint64
	// Executed is the instruction that was latched before the edge.
	Executed uint32
	Inputs   Inputs
	Signals  Signals
	// Dest is the register written on this edge; Wrote is false if none was.
	Dest  uint8
	Wrote bool
}

// Tracer receives a record after every edge.
type Tracer func(TraceRecord)

// Option configures a Core.
type Option func(*Core)

// WithTracer installs a per-edge trace callback.
func WithTracer(t Tracer) Option {
	return func(c *Core) {
		c.tracer = t
	}
}

// WithState starts the core from s instead of the reset state.
func WithState(s State) Option {
	return func(c *Core) {
		c.state = s
	}
}

// Core wraps the pure transition function with the state it advances.
// It is not safe for concurrent use.
type Core struct {
	state  State
	stats  Stats
	tracer Tracer
}

// NewCore creates a core in its reset state.
func NewCore(opts ...Option) *Core {
	c := &Core{state: NewState()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Evaluate returns the combinational outputs for the current state, e.g. the
// ALU result of the latched instruction.
func (c *Core) Evaluate(enable bool) Signals {
	return Evaluate(c.state, enable)
}

// Step applies one clock edge.
func (c *Core) Step(in Inputs) Signals {
	executed := c.state.Latch.Uint32()
	next, sig := Next(c.state, in)
	c.state = next

	dest, wrote := sig.WriteEnables.Target()
	if in.Reset {
		wrote = false
	}

	c.stats.Cycles++
	switch {
	case in.Reset:
		c.stats.Resets++
	case !in.Enable:
		c.stats.Stalls++
	case wrote:
		c.stats.Writes++
	default:
		c.stats.NoOps++
	}

	if c.tracer != nil {
		c.tracer(TraceRecord{
			Cycle:    c.stats.Cycles,
			Executed: executed,
			Inputs:   in,
			Signals:  sig,
			Dest:     dest,
			Wrote:    wrote,
		})
	}

	return sig
}

// StepWord presents a raw instruction word for one edge.
func (c *Core) StepWord(word uint32, enable bool) Signals {
	return c.Step(Inputs{
		Instruction: bitvec.New(insts.InstructionWidth, uint64(word)),
		Enable:      enable,
	})
}

// Execute latches word and then commits it, presenting a NOP on the second
// edge. It returns the signals of the committing edge.
func (c *Core) Execute(word uint32) Signals {
	c.StepWord(word, true)
	return c.StepWord(insts.NOP, true)
}

// Run presents words on consecutive enabled edges and then drains the last
// one with a NOP.
func (c *Core) Run(words []uint32) {
	for _, w := range words {
		c.StepWord(w, true)
	}
	c.StepWord(insts.NOP, true)
}

// Reset applies a synchronous reset edge.
func (c *Core) Reset() {
	c.Step(Inputs{Reset: true})
}

// State returns the current state.
func (c *Core) State() State {
	return c.state
}

// Register returns the value of register i.
func (c *Core) Register(i uint8) uint32 {
	return c.state.Regs.Uint32(i)
}

// Registers returns all 32 register values.
func (c *Core) Registers() [emu.NumRegisters]uint32 {
	var out [emu.NumRegisters]uint32
	for i := range out {
		out[i] = c.state.Regs.Uint32(uint8(i))
	}
	return out
}

// Latched returns the instruction currently held by the decoder.
func (c *Core) Latched() uint32 {
	return c.state.Latch.Uint32()
}

// Stats returns execution statistics.
func (c *Core) Stats() Stats {
	return c.stats
}
