package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/rv32core/insts"
)

// ListingBase is the load address of a program read from a listing.
const ListingBase = 0

// LoadListing reads one instruction per line. A line is either a raw word
// ("0x00500093", "00500093" or ".word 0x00500093") or one line of assembly
// ("addi x1, x0, 5"). Text after '#', ';' or "//" is a comment.
func LoadListing(r io.Reader) (*Program, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		w, err := parseListingLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}

	return NewProgram(ListingBase, words), nil
}

// LoadListingFile reads a listing from path.
func LoadListingFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadListing(f)
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func parseListingLine(line string) (uint32, error) {
	if rest, ok := strings.CutPrefix(line, ".word"); ok {
		return parseWord(strings.TrimSpace(rest))
	}

	if isRawWord(line) {
		return parseWord(line)
	}

	return insts.Assemble(line)
}

func isRawWord(s string) bool {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		return true
	}
	if len(s) != 8 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

func parseWord(s string) (uint32, error) {
	lower := strings.ToLower(s)
	lower = strings.TrimPrefix(lower, "0x")
	v, err := strconv.ParseUint(lower, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid instruction word %q", s)
	}
	return uint32(v), nil
}
