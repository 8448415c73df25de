package paging

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const maxTraceLineSize = 64 * 1024

// TraceReader parses access records from a text trace.
//
// Each line is "<hex-address> <op>". Blank lines are skipped. The first
// line that is not exactly two tokens with a valid 32-bit hex address and a
// single-character operation ends the trace: Next returns io.EOF and
// Truncated reports the line. An unknown operation character on an
// otherwise well-formed line is returned as OpInvalid and reading continues.
type TraceReader struct {
	scanner     *bufio.Scanner
	line        int
	truncatedAt int
	done        bool
}

// NewTraceReader creates a reader over r
func NewTraceReader(r io.Reader) *TraceReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxTraceLineSize)
	return &TraceReader{
		scanner: scanner,
	}
}

// Next returns the next record, or io.EOF at end of trace or truncation
func (tr *TraceReader) Next() (AccessRecord, error) {
	if tr.done {
		return AccessRecord{}, io.EOF
	}

	for tr.scanner.Scan() {
		tr.line++
		text := tr.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		rec, ok := ParseTraceLine(text)
		if !ok {
			tr.truncatedAt = tr.line
			tr.done = true
			return AccessRecord{}, io.EOF
		}
		return rec, nil
	}

	tr.done = true
	if err := tr.scanner.Err(); err != nil {
		return AccessRecord{}, ErrTraceIO("Next", err)
	}
	return AccessRecord{}, io.EOF
}

// Line returns the number of the last line read
func (tr *TraceReader) Line() int {
	return tr.line
}

// Truncated returns the line that stopped the trace early, if any
func (tr *TraceReader) Truncated() (int, bool) {
	return tr.truncatedAt, tr.truncatedAt > 0
}

// ParseTraceLine parses "<hex-address> <op>". ok is false when the line
// does not have that shape; an unknown op character is not a shape error.
func ParseTraceLine(line string) (AccessRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 || len(fields[1]) != 1 {
		return AccessRecord{}, false
	}

	addr, ok := parseHexAddress(fields[0])
	if !ok {
		return AccessRecord{}, false
	}

	return NewAccessRecord(addr, fields[1][0]), true
}

func parseHexAddress(s string) (uint32, bool) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
