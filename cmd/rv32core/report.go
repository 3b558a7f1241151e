package main

import (
	"fmt"
	"io"

	"github.com/sarchlab/rv32core/insts"
	"github.com/sarchlab/rv32core/timing/core"
	"github.com/sarchlab/rv32core/timing/driver"
)

const (
	ansiBold  = "\x1b[1;32m"
	ansiReset = "\x1b[0m"
)

// formatTrace renders one clock edge.
func formatTrace(r core.TraceRecord) string {
	var action string
	switch {
	case r.Inputs.Reset:
		action = "reset"
	case !r.Inputs.Enable:
		action = "stall"
	case r.Wrote:
		action = fmt.Sprintf("x%d <- 0x%08x", r.Dest, r.Signals.ALUResult.Uint64())
	default:
		action = "-"
	}

	return fmt.Sprintf("cycle %6d  %08x  %-24s %s",
		r.Cycle, r.Executed, insts.Disassemble(r.Executed), action)
}

// writeRegisters prints the register file four to a row. Registers that no
// longer hold their reset value are emphasised when highlight is set.
func writeRegisters(w io.Writer, regs [32]uint32, highlight bool) {
	for i := range regs {
		cell := fmt.Sprintf("x%-2d %-4s 0x%08x", i, insts.ABIName(uint8(i)), regs[i])
		if highlight && regs[i] != 0 {
			cell = ansiBold + cell + ansiReset
		}

		sep := "   "
		if i%4 == 3 {
			sep = "\n"
		}
		fmt.Fprint(w, cell, sep)
	}
}

// writeReport prints the final state and statistics of a run.
func writeReport(w io.Writer, programPath string, result *driver.Result, highlight bool) {
	cycles := result.Core.Cycles
	if cycles == 0 {
		cycles = 1
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Program: %s\n", programPath)
	fmt.Fprintf(w, "Stopped: %s\n", result.Reason)
	fmt.Fprintf(w, "Instructions fetched: %d\n", result.Feeder.Fetched)
	fmt.Fprintf(w, "Total Cycles: %d\n", result.Core.Cycles)
	fmt.Fprintf(w, "Simulated time: %.3f us\n", float64(result.SimTime)*1e6)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Breakdown:\n")
	fmt.Fprintf(w, "  Writes:       %4d cycles (%5.1f%%)\n",
		result.Core.Writes, 100.0*float64(result.Core.Writes)/float64(cycles))
	fmt.Fprintf(w, "  No-ops:       %4d cycles (%5.1f%%)\n",
		result.Core.NoOps, 100.0*float64(result.Core.NoOps)/float64(cycles))
	fmt.Fprintf(w, "  Fetch stalls: %4d cycles (%5.1f%%)\n",
		result.Core.Stalls, 100.0*float64(result.Core.Stalls)/float64(cycles))

	if result.Cache != nil {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Instruction cache:\n")
		fmt.Fprintf(w, "  Hits:      %d\n", result.Cache.Hits)
		fmt.Fprintf(w, "  Misses:    %d\n", result.Cache.Misses)
		fmt.Fprintf(w, "  Hit rate:  %.1f%%\n", 100.0*result.Cache.HitRate())
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Registers:\n")
	writeRegisters(w, result.Registers, highlight)
}
