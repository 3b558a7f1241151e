// Package loader turns RV32I programs on disk into instruction images the
// core can be fed from.
package loader

import (
	"encoding/binary"
	"fmt"
)

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// WordSize is the size of one instruction in bytes.
const WordSize = 4

// Segment represents a loadable region of a program.
type Segment struct {
	// VirtAddr is the address where this segment is loaded.
	VirtAddr uint64
	// Data contains the segment contents from the file.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint64
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// Contains reports whether addr falls inside the segment's memory image.
func (s Segment) Contains(addr uint64) bool {
	return addr >= s.VirtAddr && addr-s.VirtAddr < s.MemSize
}

// End returns the first address past the segment.
func (s Segment) End() uint64 {
	return s.VirtAddr + s.MemSize
}

// Program is an instruction image with an entry point.
type Program struct {
	// EntryPoint is the address of the first instruction.
	EntryPoint uint64
	// Segments contains all loadable segments.
	Segments []Segment
}

// NewProgram builds a program holding words as one executable segment at
// base.
func NewProgram(base uint64, words []uint32) *Program {
	data := make([]byte, len(words)*WordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*WordSize:], w)
	}

	return &Program{
		EntryPoint: base,
		Segments: []Segment{{
			VirtAddr: base,
			Data:     data,
			MemSize:  uint64(len(data)),
			Flags:    SegmentFlagRead | SegmentFlagExecute,
		}},
	}
}

// Validate checks that the program can be fetched from. Instruction fetch
// is word aligned, so the entry point must be too.
func (p *Program) Validate() error {
	if p.EntryPoint%WordSize != 0 {
		return fmt.Errorf("entry point 0x%x is not %d-byte aligned", p.EntryPoint, WordSize)
	}
	return nil
}

// Read8 returns the byte at addr. Addresses outside every segment and the
// BSS part of a segment read as zero.
func (p *Program) Read8(addr uint64) byte {
	for _, seg := range p.Segments {
		if !seg.Contains(addr) {
			continue
		}
		off := addr - seg.VirtAddr
		if off < uint64(len(seg.Data)) {
			return seg.Data[off]
		}
		return 0
	}
	return 0
}

// ReadBytes returns size bytes starting at addr.
func (p *Program) ReadBytes(addr uint64, size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = p.Read8(addr + uint64(i))
	}
	return data
}

// Fetch returns the little-endian instruction word at addr. ok is false when
// addr is not inside an executable segment.
func (p *Program) Fetch(addr uint64) (word uint32, ok bool) {
	seg, ok := p.TextSegment(addr)
	if !ok || !seg.Contains(addr+WordSize-1) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(p.ReadBytes(addr, WordSize)), true
}

// TextSegment returns the executable segment containing addr.
func (p *Program) TextSegment(addr uint64) (Segment, bool) {
	for _, seg := range p.Segments {
		if seg.Flags&SegmentFlagExecute != 0 && seg.Contains(addr) {
			return seg, true
		}
	}
	return Segment{}, false
}

// End returns the first address past the executable segment holding the
// entry point, or the entry point itself if there is none.
func (p *Program) End() uint64 {
	seg, ok := p.TextSegment(p.EntryPoint)
	if !ok {
		return p.EntryPoint
	}
	return seg.End()
}

// Words returns every instruction from the entry point to End.
func (p *Program) Words() []uint32 {
	var words []uint32
	for addr := p.EntryPoint; addr+WordSize <= p.End(); addr += WordSize {
		w, ok := p.Fetch(addr)
		if !ok {
			break
		}
		words = append(words, w)
	}
	return words
}
